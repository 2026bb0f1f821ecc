package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"cafe-pos/catalog"
	"cafe-pos/config"
	"cafe-pos/handlers"
	"cafe-pos/routes"
	"cafe-pos/session"
	"cafe-pos/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := config.InitDB(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	log.Println("✅ Database connected and migrated successfully")

	st := store.New(db)
	sessions := session.NewManager(st, cfg.ResetDelay())

	// Drop carts abandoned past the idle limit.
	go func() {
		for range time.Tick(10 * time.Minute) {
			if n := sessions.Sweep(cfg.SessionMaxIdle()); n > 0 {
				log.Printf("Swept %d idle cart session(s)", n)
			}
		}
	}()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Café POS Storefront API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "☕ Welcome to the Café POS Storefront API",
			"docs":    "/api/state-machine",
			"health":  "/health",
		})
	})

	routes.SetupRoutes(r, routes.Deps{
		Catalog:  handlers.NewCatalogHandler(catalog.NewAccessor(st)),
		Cart:     handlers.NewCartHandler(st),
		Checkout: handlers.NewCheckoutHandler(),
		Orders:   handlers.NewOrderHandler(st),
		Sessions: sessions,
	})

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
