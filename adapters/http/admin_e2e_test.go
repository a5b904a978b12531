package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/hoangvle/scholarfolio/adapters/persistence"
	authUC "github.com/hoangvle/scholarfolio/internal/application/usecase/auth"
	sectionUC "github.com/hoangvle/scholarfolio/internal/application/usecase/section"
	"github.com/hoangvle/scholarfolio/internal/config"
	"github.com/hoangvle/scholarfolio/internal/domain/user"
	"github.com/hoangvle/scholarfolio/pkg/auth"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type AdminE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	dbPool   *pgxpool.Pool
	testUser user.User
	testPass string
	token    string
}

func (s *AdminE2ETestSuite) SetupSuite() {
	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}
	s.dbPool = dbPool

	appLogger := logger.NewNop()

	s.testPass = "e2e_test_password_123"
	hash, _ := auth.HashPassword(s.testPass)
	s.testUser = user.User{
		ID:           uuid.New(),
		Email:        "e2e_sections@example.com",
		PasswordHash: hash,
	}
	query := `INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3) ON CONFLICT (email) DO UPDATE SET password_hash = $3`
	_, err = dbPool.Exec(context.Background(), query, s.testUser.ID, s.testUser.Email, s.testUser.PasswordHash)
	if err != nil {
		s.T().Fatalf("E2E test failed to seed user: %v", err)
	}

	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	sectionRepo := persistence.NewPostgresSectionRepo(dbPool, appLogger)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	listUseCase := sectionUC.NewListSectionsUseCase(sectionRepo)
	createUseCase := sectionUC.NewCreateSectionUseCase(sectionRepo, nil, nil, appLogger)
	updateUseCase := sectionUC.NewUpdateSectionUseCase(sectionRepo, nil, nil, appLogger)
	deleteUseCase := sectionUC.NewDeleteSectionUseCase(sectionRepo, nil, nil, appLogger)
	reorderUseCase := sectionUC.NewReorderSectionsUseCase(sectionRepo, nil, nil, appLogger)

	authHandler := NewAuthHandler(loginUseCase)
	sectionHandler := NewSectionHandler(listUseCase, createUseCase, updateUseCase, deleteUseCase, reorderUseCase, appLogger)
	authMiddleware := AuthMiddleware(jwtSvc)
	errorMiddleware := ErrorMiddleware(appLogger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", authHandler.Login)
			adminPrivate := admin.Group("/")
			adminPrivate.Use(authMiddleware)
			{
				sections := adminPrivate.Group("/sections")
				{
					sections.GET("", sectionHandler.ListSections)
					sections.POST("", sectionHandler.CreateSection)
					sections.PUT("/reorder", sectionHandler.ReorderSections)
					sections.PUT("/:id", sectionHandler.UpdateSection)
					sections.DELETE("/:id", sectionHandler.DeleteSection)
				}
			}
		}
	}

	s.Router = router
}

func (s *AdminE2ETestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Exec(context.Background(), `DELETE FROM sections WHERE owner_id = $1`, s.testUser.ID)
		s.dbPool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, s.testUser.ID)
		s.dbPool.Close()
	}
}

func TestAdminE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AdminE2ETestSuite))
}

func (s *AdminE2ETestSuite) request(method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *AdminE2ETestSuite) Test_Section_Lifecycle() {
	// Unauthenticated requests bounce.
	rr := s.request(http.MethodGet, "/api/admin/sections", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)

	// Login.
	rr = s.request(http.MethodPost, "/api/admin/auth/login", gin.H{
		"email": s.testUser.Email, "password": s.testPass,
	})
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	var loginResponse map[string]string
	json.Unmarshal(rr.Body.Bytes(), &loginResponse)
	s.token = loginResponse["access_token"]
	s.Require().NotEmpty(s.token)

	// Create.
	rr = s.request(http.MethodPost, "/api/admin/sections", gin.H{
		"title":   "Invited Talks",
		"type":    "list",
		"content": []string{"Keynote at SoICT 2025"},
	})
	s.Require().Equal(http.StatusCreated, rr.Code)

	var created map[string]any
	json.Unmarshal(rr.Body.Bytes(), &created)
	sectionID, _ := created["id"].(string)
	s.Require().NotEmpty(sectionID)

	// Update.
	rr = s.request(http.MethodPut, "/api/admin/sections/"+sectionID, gin.H{
		"title":   "Talks",
		"visible": false,
	})
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	// List reflects the update.
	rr = s.request(http.MethodGet, "/api/admin/sections", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	var listed []map[string]any
	json.Unmarshal(rr.Body.Bytes(), &listed)
	found := false
	for _, sec := range listed {
		if sec["id"] == sectionID {
			found = true
			assert.Equal(s.T(), "Talks", sec["title"])
			assert.Equal(s.T(), false, sec["visible"])
		}
	}
	assert.True(s.T(), found)

	// Content shape mismatch is a 400, not a 500.
	rr = s.request(http.MethodPut, "/api/admin/sections/"+sectionID, gin.H{
		"content": "a plain string on a list section",
	})
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)

	// Delete.
	rr = s.request(http.MethodDelete, "/api/admin/sections/"+sectionID, nil)
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	rr = s.request(http.MethodDelete, "/api/admin/sections/"+sectionID, nil)
	assert.Equal(s.T(), http.StatusNotFound, rr.Code)
}
