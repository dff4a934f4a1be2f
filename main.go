package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-pathways-backend/config"
	"career-pathways-backend/controllers/authentication"
	catalogctl "career-pathways-backend/controllers/catalog"
	chatctl "career-pathways-backend/controllers/chat"
	communityctl "career-pathways-backend/controllers/community"
	"career-pathways-backend/controllers/httpCors"
	profilesctl "career-pathways-backend/controllers/profiles"
	suggestionsctl "career-pathways-backend/controllers/suggestions"
	wizardctl "career-pathways-backend/controllers/wizard"
	"career-pathways-backend/models/catalog"
	"career-pathways-backend/models/community"
	"career-pathways-backend/models/profile"
	"career-pathways-backend/models/users"
	"career-pathways-backend/services"
	"career-pathways-backend/wizard"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := config.InitLogger(); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer config.Logger.Sync()

	if err := config.InitDB(); err != nil {
		config.Logger.Fatal("failed to initialize database", zap.Error(err))
	}

	err := config.DB.AutoMigrate(
		&users.User{},
		&profile.StudentProfile{},
		&catalog.Pathway{},
		&catalog.Campus{},
		&catalog.Course{},
		&community.Internship{},
		&community.Alumnus{},
	)
	if err != nil {
		config.Logger.Fatal("failed to migrate database", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		config.Logger.Fatal("failed to get database handle", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		config.Logger.Fatal("failed to ping database", zap.Error(err))
	}
	config.Logger.Info("database connection established")

	catalogSvc := services.NewCatalogService(config.DB)
	titleClient := services.NewTitleClient(os.Getenv("TITLES_API_URL"), os.Getenv("TITLES_API_KEY"))
	generator := services.NewSuggestionGenerator(os.Getenv("OPENAI_API_KEY"))
	profileStore := services.NewGormProfileStore(config.DB)
	roadmaps := services.NewRoadmapService(catalogSvc)
	submitter := services.NewProfileSubmitter(profileStore, roadmaps)
	sessions := wizard.NewStore(wizard.DefaultIdle)
	wizardSvc := services.NewWizardService(sessions, generator, catalogSvc, submitter)
	chatSvc := services.NewChatService(os.Getenv("OPENAI_API_KEY"), catalogSvc)

	router := gin.Default()

	router.GET("/login/google", authentication.HandleGoogleLogin)
	router.GET("/callback/google", authentication.HandleGoogleCallback)
	router.POST("/register", authentication.Register)
	router.POST("/login", authentication.Login)
	router.POST("/logout", authentication.Logout)

	communityHandler := communityctl.NewHandler(config.DB)

	api := router.Group("/api")
	catalogctl.NewHandler(catalogSvc, titleClient).Register(api)
	communityHandler.RegisterPublic(api)

	authed := router.Group("/api", authentication.AuthMiddleware())
	authed.GET("/me", authentication.Me)
	wizardctl.NewHandler(wizardSvc).Register(authed)
	profilesctl.NewHandler(submitter, profileStore).Register(authed)
	suggestionsctl.NewHandler(generator).Register(authed)
	chatctl.NewHandler(chatSvc).Register(authed)
	communityHandler.RegisterAuthed(authed)

	handler := httpCors.CorsSettings().Handler(router)

	config.Logger.Info("server listening", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		config.Logger.Fatal("server stopped", zap.Error(err))
	}
}
