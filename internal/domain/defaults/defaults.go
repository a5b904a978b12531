// Package defaults holds the baseline portfolio content: the profile
// and sections served before anything is persisted, and the merge base
// afterwards. Both factories are pure and return fresh values each
// call; card ids are fixed literals so merges are stable across runs.
package defaults

import (
	"github.com/hoangvle/scholarfolio/internal/domain/profile"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
)

func Profile() profile.Profile {
	return profile.Profile{
		Name:        "Dr. Lê Hoàng Vũ",
		Position:    "Associate Professor of Computer Science",
		Affiliation: "Faculty of Information Technology, Hanoi University of Science and Technology",
		Nationality: "Vietnamese",
		Email:       "vu.lehoang@hust.example.edu",
		Phone:       "+84 24 0000 0000",
		Mission: "<p>My research focuses on <strong>data-intensive systems</strong> and their application " +
			"to scientific computing. I teach, supervise graduate students, and collaborate with " +
			"industry partners on applied research projects.</p>",
		Languages: []profile.Language{
			{Name: "Vietnamese", Color: "red"},
			{Name: "English", Color: "blue"},
			{Name: "French", Color: "indigo"},
		},
	}
}

func Sections() []section.Section {
	return []section.Section{
		{
			ID:      section.IDAbout,
			Title:   "About",
			Type:    section.TypeText,
			Order:   1,
			Visible: true,
			Content: section.TextContent(
				"<p>I am an academic researcher and lecturer. This page collects my teaching, " +
					"publications, supervised theses, and ongoing projects.</p>"),
		},
		{
			ID:      section.IDResearch,
			Title:   "Research Interests",
			Type:    section.TypeList,
			Order:   2,
			Visible: true,
			Content: section.ListContent(
				"Distributed data management",
				"Query optimization for heterogeneous storage",
				"Stream processing and event-driven architectures",
				"Reproducible scientific workflows",
			),
		},
		{
			ID:      section.IDCourses,
			Title:   "Courses",
			Type:    section.TypeCards,
			Order:   3,
			Visible: true,
			Content: section.FlatCards(
				section.Card{
					ID:       "crs-dbsys",
					Color:    "blue",
					Icon:     "database",
					Title:    "Database Systems",
					Code:     "IT3090",
					Level:    "Undergraduate",
					Semester: "Fall",
				},
				section.Card{
					ID:       "crs-distsys",
					Color:    "violet",
					Icon:     "globe",
					Title:    "Distributed Systems",
					Code:     "IT4611",
					Level:    "Undergraduate",
					Semester: "Spring",
				},
				section.Card{
					ID:       "crs-bigdata",
					Color:    "teal",
					Icon:     "chart",
					Title:    "Large-Scale Data Processing",
					Code:     "IT5427",
					Level:    "Graduate",
					Semester: "Fall",
				},
			),
		},
		{
			ID:      section.IDPublications,
			Title:   "Publications",
			Type:    section.TypeCards,
			Order:   4,
			Visible: true,
			Content: section.FlatCards(
				section.Card{
					ID:      "pub-adaptive-2024",
					Color:   "emerald",
					Icon:    "book",
					Title:   "Adaptive Partitioning for Hybrid Transactional Workloads",
					Authors: "Lê H. Vũ, Trần M. Anh",
					Venue:   "VLDB",
					Year:    2024,
					DOI:     "10.0000/vldb.2024.113",
				},
				section.Card{
					ID:      "pub-stream-2023",
					Color:   "amber",
					Icon:    "chart",
					Title:   "Watermark Propagation in Federated Stream Pipelines",
					Authors: "Lê H. Vũ, Nguyễn T. Hà, Phạm Q. Dũng",
					Venue:   "ICDE",
					Year:    2023,
					DOI:     "10.0000/icde.2023.881",
				},
			),
		},
		{
			ID:      section.IDTheses,
			Title:   "Theses Supervised",
			Type:    section.TypeCards,
			Order:   5,
			Visible: true,
			Content: section.GroupedCards(
				section.CardGroup{
					Name: "Data Management",
					Cards: []section.Card{
						{
							ID:      "ths-index-2024",
							Color:   "blue",
							Icon:    "graduation",
							Title:   "Learned Indexes over Append-Only Stores",
							Student: "Đỗ Văn Minh",
							Degree:  "MSc",
							Year:    2024,
						},
					},
				},
				section.CardGroup{
					Name: "Stream Processing",
					Cards: []section.Card{
						{
							ID:      "ths-backpressure-2023",
							Color:   "violet",
							Icon:    "graduation",
							Title:   "Backpressure Strategies in Edge Stream Topologies",
							Student: "Hoàng Thu Trang",
							Degree:  "PhD",
							Year:    2023,
						},
					},
				},
			),
		},
		{
			ID:      section.IDProjects,
			Title:   "Projects",
			Type:    section.TypeCards,
			Order:   6,
			Visible: true,
			Content: section.FlatCards(
				section.Card{
					ID:          "prj-riverbed",
					Color:       "teal",
					Icon:        "code",
					Title:       "Riverbed",
					Description: "Open-source toolkit for replayable stream experiments.",
					Role:        "Principal Investigator",
					Funding:     "NAFOSTED",
					Period:      "2023–2026",
				},
			),
		},
		{
			ID:      section.IDResponsibilities,
			Title:   "Responsibilities",
			Type:    section.TypeCards,
			Order:   7,
			Visible: true,
			Content: section.FlatCards(
				section.Card{
					ID:          "rsp-pc-vldb",
					Color:       "amber",
					Icon:        "users",
					Title:       "Program Committee Member",
					Description: "VLDB, ICDE, EDBT review committees.",
				},
				section.Card{
					ID:          "rsp-lab-head",
					Color:       "rose",
					Icon:        "award",
					Title:       "Head of Data Systems Lab",
					Description: "Coordinates lab research agenda and student admissions.",
				},
			),
		},
		{
			ID:      section.IDCompetences,
			Title:   "Competences",
			Type:    section.TypeCards,
			Order:   8,
			Visible: true,
			Content: section.FlatCards(
				section.Card{
					ID:    "cmp-systems",
					Color: "blue",
					Icon:  "code",
					Title: "Systems Engineering",
					Tools: []string{"Go", "Rust", "PostgreSQL", "Kafka"},
				},
				section.Card{
					ID:    "cmp-teaching",
					Color: "emerald",
					Icon:  "presentation",
					Title: "Curriculum Design",
					Tools: []string{"Project-based learning", "Peer review"},
				},
			),
		},
	}
}
