package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hoangvle/scholarfolio/adapters/event"
	httpAdapter "github.com/hoangvle/scholarfolio/adapters/http"
	"github.com/hoangvle/scholarfolio/adapters/persistence"
	"github.com/hoangvle/scholarfolio/internal/application/reconcile"
	authUC "github.com/hoangvle/scholarfolio/internal/application/usecase/auth"
	portfolioUC "github.com/hoangvle/scholarfolio/internal/application/usecase/portfolio"
	profileUC "github.com/hoangvle/scholarfolio/internal/application/usecase/profile"
	sectionUC "github.com/hoangvle/scholarfolio/internal/application/usecase/section"
	"github.com/hoangvle/scholarfolio/internal/config"
	"github.com/hoangvle/scholarfolio/pkg/auth"
	"github.com/hoangvle/scholarfolio/pkg/logger"
	"github.com/hoangvle/scholarfolio/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Scholarfolio API server...")

	ownerID, err := uuid.Parse(cfg.Owner.ID)
	if err != nil {
		appLogger.Fatal("OWNER_ID is missing or not a UUID", err)
	}

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "scholarfolio-api")
		if err != nil {
			appLogger.Fatal("cannot init tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	var cache *persistence.PortfolioCache
	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		appLogger.Warn("cannot connect Redis, portfolio cache disabled")
	} else {
		defer redisClient.Close()
		cache = persistence.NewPortfolioCache(redisClient, cfg.Redis.CacheTTL, appLogger)
	}

	var kafkaClient *event.KafkaProducerClient
	kafkaClient, err = event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Warn("cannot init Kafka, content events disabled")
		kafkaClient = nil
	} else {
		defer kafkaClient.Close()
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	sectionRepo := persistence.NewPostgresSectionRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	engine := reconcile.NewEngine(appLogger)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, kafkaClient, cache, appLogger)
	listSectionsUseCase := sectionUC.NewListSectionsUseCase(sectionRepo)
	createSectionUseCase := sectionUC.NewCreateSectionUseCase(sectionRepo, kafkaClient, cache, appLogger)
	updateSectionUseCase := sectionUC.NewUpdateSectionUseCase(sectionRepo, kafkaClient, cache, appLogger)
	deleteSectionUseCase := sectionUC.NewDeleteSectionUseCase(sectionRepo, kafkaClient, cache, appLogger)
	reorderSectionsUseCase := sectionUC.NewReorderSectionsUseCase(sectionRepo, kafkaClient, cache, appLogger)
	getPortfolioUseCase := portfolioUC.NewGetPortfolioUseCase(profileRepo, sectionRepo, engine, cache, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, appLogger)
	sectionHandler := httpAdapter.NewSectionHandler(
		listSectionsUseCase,
		createSectionUseCase,
		updateSectionUseCase,
		deleteSectionUseCase,
		reorderSectionsUseCase,
		appLogger,
	)
	portfolioHandler := httpAdapter.NewPortfolioHandler(getPortfolioUseCase, ownerID, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", authHandler.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(authMiddleware)
			{
				adminPrivate.GET("/profile", profileHandler.GetProfile)
				adminPrivate.PUT("/profile", profileHandler.UpdateProfile)

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

		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "UP"}) })
			public.GET("/portfolio", portfolioHandler.GetPortfolio)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
