package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rohits-web03/ideaorbit/internal/api"
	"github.com/rohits-web03/ideaorbit/internal/api/services"
	"github.com/rohits-web03/ideaorbit/internal/config"
	"github.com/rohits-web03/ideaorbit/internal/repositories"
)

// @title IdeaOrbit API
// @version 1.0
// @description Social idea-sharing backend: accounts, ideas with images, likes and connections.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	db, err := repositories.ConnectDatabase(config.Envs.DB_URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	deps := api.Deps{DB: db}

	if storage, err := repositories.NewR2Storage(config.Envs.R2); err != nil {
		log.Println("Object storage disabled:", err)
	} else {
		deps.Storage = storage
	}

	if config.Envs.SMTP.Host != "" {
		deps.Mailer = services.NewSMTPMailer(config.Envs.SMTP)
	} else {
		log.Println("SMTP not configured, connection emails disabled")
	}

	if config.Envs.Redis.Addr != "" {
		deps.Cache = repositories.NewCountCache(config.Envs.Redis)
	}

	handler := api.SetupRouter(deps)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: handler,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting IdeaOrbit server on port: %s", config.Envs.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", config.Envs.Port, err)
	}
}
