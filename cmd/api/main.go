package main

import (
	"fmt"
	"log"
	"os"

	"real-estate-crm/internal/auth"
	"real-estate-crm/internal/calendar"
	"real-estate-crm/internal/config"
	"real-estate-crm/internal/database"
	"real-estate-crm/internal/handlers"
	"real-estate-crm/internal/importer"
	"real-estate-crm/internal/scheduler"
	"real-estate-crm/internal/search"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	configPath := getEnv("CONFIG_PATH", "config/crm_config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}
	if appConfig.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required (env or config)")
	}

	// Database
	dbCfg := appConfig.Database
	db, err := database.NewGormDB(dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("Database schema initialized")

	// Search (optional)
	var searchClient *search.SearchClient
	if appConfig.Search.Enabled {
		searchClient = search.NewSearchClient(appConfig.Search.Meilisearch.Host, appConfig.Search.Meilisearch.APIKey)
		if err := searchClient.InitIndexes(); err != nil {
			log.Printf("Warning: Failed to initialize search indexes: %v. Search disabled.", err)
			searchClient = nil
		} else {
			log.Println("Search indexes initialized")
		}
	}

	// Calendar integration and scheduler
	calendarService := calendar.NewService(db.DB(), appConfig.Google)
	appScheduler := scheduler.NewScheduler(db.DB(), calendarService, appConfig)
	if err := appScheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer appScheduler.Stop()

	listingImporter := importer.NewListingImporter(appConfig.Importer)
	tokenIssuer := auth.NewTokenIssuer(appConfig.Auth.JWTSecret, appConfig.Auth.TokenTTL())

	router := setupRouter(appConfig, db, searchClient, calendarService, listingImporter, tokenIssuer)

	addr := fmt.Sprintf(":%d", appConfig.Server.Port)
	log.Printf("Starting CRM API on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func setupRouter(
	cfg *config.Config,
	db *database.GormDB,
	searchClient *search.SearchClient,
	calendarService *calendar.Service,
	listingImporter *importer.ListingImporter,
	tokenIssuer *auth.TokenIssuer,
) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	gormDB := db.DB()
	authHandler := handlers.NewAuthHandler(gormDB, tokenIssuer)
	contactHandler := handlers.NewContactHandler(gormDB, searchClient)
	dealHandler := handlers.NewDealHandler(gormDB)
	taskHandler := handlers.NewTaskHandler(gormDB)
	appointmentHandler := handlers.NewAppointmentHandler(gormDB)
	propertyHandler := handlers.NewPropertyHandler(gormDB, listingImporter, searchClient)
	calendarHandler := handlers.NewCalendarHandler(calendarService, cfg.Sync, cfg.Google.SettingsURL)
	dashboardHandler := handlers.NewDashboardHandler(gormDB)
	searchHandler := handlers.NewSearchHandler(searchClient)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes and the OAuth redirect target
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/api/calendar/callback", calendarHandler.Callback)

	// Everything else requires a session
	api := r.Group("/api", auth.Middleware(tokenIssuer))

	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)
	api.PUT("/auth/onboarding", authHandler.SetOnboarding)

	api.GET("/contacts", contactHandler.List)
	api.POST("/contacts", contactHandler.Create)
	api.GET("/contacts/:id", contactHandler.Get)
	api.PUT("/contacts/:id", contactHandler.Update)
	api.DELETE("/contacts/:id", contactHandler.Delete)
	api.GET("/contacts/:id/communications", contactHandler.ListCommunications)
	api.POST("/contacts/:id/communications", contactHandler.LogCommunication)
	api.GET("/contacts/:id/activities", contactHandler.ListActivities)

	api.GET("/deals", dealHandler.List)
	api.POST("/deals", dealHandler.Create)
	api.GET("/deals/pipeline", dealHandler.Pipeline)
	api.GET("/deals/:id", dealHandler.Get)
	api.PUT("/deals/:id", dealHandler.Update)
	api.DELETE("/deals/:id", dealHandler.Delete)

	api.GET("/tasks", taskHandler.List)
	api.POST("/tasks", taskHandler.Create)
	api.GET("/tasks/columns", taskHandler.Columns)
	api.PUT("/tasks/reorder", taskHandler.Reorder)
	api.GET("/tasks/:id", taskHandler.Get)
	api.PUT("/tasks/:id", taskHandler.Update)
	api.DELETE("/tasks/:id", taskHandler.Delete)

	api.GET("/appointments", appointmentHandler.List)
	api.POST("/appointments", appointmentHandler.Create)
	api.GET("/appointments/upcoming", appointmentHandler.Upcoming)
	api.GET("/appointments/:id", appointmentHandler.Get)
	api.PUT("/appointments/:id", appointmentHandler.Update)
	api.DELETE("/appointments/:id", appointmentHandler.Delete)

	api.GET("/properties", propertyHandler.List)
	api.POST("/properties", propertyHandler.Create)
	api.POST("/properties/import", propertyHandler.Import)
	api.GET("/properties/:id", propertyHandler.Get)
	api.PUT("/properties/:id", propertyHandler.Update)
	api.DELETE("/properties/:id", propertyHandler.Delete)
	api.POST("/properties/:id/images", propertyHandler.AddImage)
	api.PUT("/properties/:id/images/:imageId/primary", propertyHandler.SetPrimaryImage)
	api.DELETE("/properties/:id/images/:imageId", propertyHandler.DeleteImage)

	api.GET("/calendar/status", calendarHandler.Status)
	api.POST("/calendar/connect", calendarHandler.Connect)
	api.POST("/calendar/disconnect", calendarHandler.Disconnect)
	api.POST("/calendar/sync", calendarHandler.SyncNow)
	api.POST("/calendar/tasks/:id/push", calendarHandler.PushTask)
	api.POST("/calendar/tasks/:id/update-event", calendarHandler.UpdateTaskEvent)
	api.DELETE("/calendar/events/:eventId", calendarHandler.DeleteEvent)

	api.GET("/dashboard/stats", dashboardHandler.Stats)
	api.GET("/dashboard/activity", dashboardHandler.RecentActivity)

	api.GET("/search/contacts", searchHandler.Contacts)
	api.GET("/search/properties", searchHandler.Properties)

	return r
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
