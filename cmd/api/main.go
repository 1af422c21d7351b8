package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/tarun33333/classsync/internal/config"
	"github.com/tarun33333/classsync/internal/database"
	"github.com/tarun33333/classsync/internal/routes"
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

	// The attendance ledger's uniqueness guarantees live in these indexes.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	if err := database.EnsureIndexes(ctx, client, cfg.DatabaseName); err != nil {
		cancel()
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	if cfg.AllowDebugBypass {
		log.Print("WARNING: debug WiFi bypass is enabled; do not run this in production")
	}

	// Initialize router
	router := routes.SetupRouter(client, cfg)

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	log.Printf("Server listening on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
