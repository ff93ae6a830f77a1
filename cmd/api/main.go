package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/clinicbooking/clinic-scheduler/internal/cache"
	"github.com/clinicbooking/clinic-scheduler/internal/config"
	dbpkg "github.com/clinicbooking/clinic-scheduler/internal/db"
	"github.com/clinicbooking/clinic-scheduler/internal/mailer"
	"github.com/clinicbooking/clinic-scheduler/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	redisClient := cache.NewRedis(cfg)

	mailSender := mailer.NewSender(cfg)
	mailDispatcher := mailer.NewDispatcher(mailSender)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, redisClient, mailDispatcher)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
