package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/jayantgoyal1502/CampusHire/internal/auth"
	"github.com/jayantgoyal1502/CampusHire/internal/config"
	"github.com/jayantgoyal1502/CampusHire/internal/database"
	"github.com/jayantgoyal1502/CampusHire/internal/middleware"
	"github.com/jayantgoyal1502/CampusHire/internal/repository"
	"github.com/jayantgoyal1502/CampusHire/internal/routes"
	"github.com/jayantgoyal1502/CampusHire/internal/utils"
	"github.com/jayantgoyal1502/CampusHire/internal/workflow"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Connect to MongoDB
	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	if err := database.EnsureIndexes(ctx, client.Database(cfg.DatabaseName)); err != nil {
		cancel()
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	// Workflow engine over the Mongo repositories
	engine := workflow.NewEngine(
		repository.NewApplicationRepo(client, cfg.DatabaseName),
		repository.NewStudentRepo(client, cfg.DatabaseName),
		repository.NewJobRepo(client, cfg.DatabaseName),
		repository.NewRecruiterRepo(client, cfg.DatabaseName),
		mailer,
	)

	// Login rate limiter: shared via Redis when configured, in-process
	// otherwise
	var limiter middleware.Limiter
	if cfg.RedisAddr != "" {
		limiter = middleware.NewRedisLimiter(
			redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
			cfg.LoginRateLimit, cfg.LoginRateWindow)
	} else {
		limiter = middleware.NewMemoryLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	}

	// Initialize router
	router := routes.SetupRouter(client, cfg, tokens, engine, mailer, limiter)

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Wrap router with CORS
	handler := c.Handler(router)

	// Start server
	log.Printf("🚀 Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
