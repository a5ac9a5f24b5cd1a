package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/suivi-dev/suivi/db"
	"github.com/suivi-dev/suivi/internal/auth"
	"github.com/suivi-dev/suivi/internal/config"
	"github.com/suivi-dev/suivi/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment as-is")
	}

	cfg, err := config.Load(os.Getenv("SUIVI_CONFIG"))

	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.Database)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.SeedAdmin(database, cfg.Seed, cfg.Security.BcryptCost); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	if err := auth.PurgeExpired(database); err != nil {
		log.Printf("Failed to purge expired sessions: %v", err)
	}

	r := router.SetupRouter(cfg, database)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("Listening on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
