package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/servihub/marketplace-api/internal/cache"
	"github.com/servihub/marketplace-api/internal/config"
	dbpkg "github.com/servihub/marketplace-api/internal/db"
	"github.com/servihub/marketplace-api/internal/media"
	"github.com/servihub/marketplace-api/internal/middleware"
	"github.com/servihub/marketplace-api/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	cacheClient := cache.New(cfg)
	if cacheClient != nil {
		if err := cacheClient.Ping(context.Background()); err != nil {
			log.Printf("redis unreachable, continuing without cache: %v", err)
			cacheClient = nil
		}
	}

	// media.Store is an optional capability; handlers receive nil when no
	// blob backend is configured.
	var store media.Store
	if s3 := media.NewS3Store(cfg); s3 != nil {
		store = s3
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, cacheClient, store)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
