package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/maa-telecom/repair-pos-api/config"
	"github.com/maa-telecom/repair-pos-api/controllers"
	"github.com/maa-telecom/repair-pos-api/middleware"
	"github.com/maa-telecom/repair-pos-api/services"
	"github.com/maa-telecom/repair-pos-api/store"
)

func main() {
	log.Println("Starting Maa Telecom Repair POS API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.ParseLogLevel())

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate the storage table
	db := config.GetDB()
	if err := db.AutoMigrate(&store.StorageEntry{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Load the repair list into the store
	repairStore, err := store.Init(db)
	if err != nil {
		log.Fatalf("Failed to load repair store: %v", err)
	}
	log.Printf("Loaded %d repair records", repairStore.Count())

	// Initialize the diagnostic suggestion gateway
	services.InitDiagnosticService(cfg)

	// Initialize Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.Default())

	registerRoutes(router)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// registerRoutes wires the API v1 routes onto the router
func registerRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Storage status endpoint
		v1.GET("/database/status", databaseStatus)

		// Dashboard view
		v1.GET("/dashboard", controllers.GetDashboard)

		// Repair lifecycle and listing
		v1.POST("/repairs", controllers.CreateRepair)
		v1.GET("/repairs", controllers.ListRepairs)
		v1.GET("/repairs/:id", controllers.GetRepair)
		v1.DELETE("/repairs/:id", controllers.DeleteRepair)

		// Invoice view
		v1.GET("/repairs/:id/invoice", controllers.GetInvoice)
		v1.GET("/repairs/:id/invoice/print", controllers.PrintInvoice)

		// Diagnostic suggestion gateway
		v1.POST("/diagnostics", controllers.SuggestDiagnostic)

		// Reference data
		v1.GET("/parts", controllers.ListParts)
		v1.GET("/shop", controllers.GetShopDetails)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Unknown route",
			},
		})
	})
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Maa Telecom Repair POS API is running",
	})
}

// databaseStatus checks database connectivity and reports whether the repair
// storage entry exists yet
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var entries int64
	if err := db.Model(&store.StorageEntry{}).Where("key = ?", store.StorageKey).Count(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query storage entries",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"repairEntryPresent": entries > 0,
	})
}
