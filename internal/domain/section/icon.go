package section

// Icon is the renderable identifier the UI maps to an actual glyph.
// Cards persist icons as symbolic names because renderable references
// cannot be serialized; the renderer re-resolves names at display time.
type Icon string

const (
	IconDefault    Icon = "file-text"
	IconBook       Icon = "book-open"
	IconFlask      Icon = "flask"
	IconGraduation Icon = "graduation-cap"
	IconGlobe      Icon = "globe"
	IconUsers      Icon = "users"
	IconCode       Icon = "code"
	IconAward      Icon = "award"
	IconChart      Icon = "bar-chart"
	IconDatabase   Icon = "database"
	IconMicroscope Icon = "microscope"
	IconPresenting Icon = "presentation"
)

var iconRegistry = map[string]Icon{
	"book":         IconBook,
	"book-open":    IconBook,
	"flask":        IconFlask,
	"graduation":   IconGraduation,
	"glasses":      IconGraduation,
	"globe":        IconGlobe,
	"users":        IconUsers,
	"code":         IconCode,
	"award":        IconAward,
	"chart":        IconChart,
	"bar-chart":    IconChart,
	"database":     IconDatabase,
	"microscope":   IconMicroscope,
	"presentation": IconPresenting,
	"file-text":    IconDefault,
}

// ResolveIcon maps a stored symbolic name to a renderable icon.
// Unknown or missing names resolve to the default icon, never an error.
func ResolveIcon(name string) Icon {
	if icon, ok := iconRegistry[name]; ok {
		return icon
	}
	return IconDefault
}
