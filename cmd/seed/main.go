// Package main seeds the database with demo data for local development.
package main

import (
	"flag"
	"log"

	"muro/internal/config"
	"muro/internal/database"
	"muro/internal/seed"
)

func main() {
	count := flag.Int("count", 40, "number of graffitis to create")
	adminEmail := flag.String("admin-email", "", "admin account to ensure exists")
	adminPassword := flag.String("admin-password", "", "password for a newly created admin account")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		GraffitiCount: *count,
		AdminEmail:    *adminEmail,
		AdminPassword: *adminPassword,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
