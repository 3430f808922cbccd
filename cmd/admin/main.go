// Package main provides admin account management utilities for Muro.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"muro/internal/config"
	"muro/internal/database"
	"muro/internal/models"
	"muro/internal/seed"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin create <email> <password>   - Create an admin account")
		fmt.Println("  go run ./cmd/admin promote <user_id>           - Promote user to admin")
		fmt.Println("  go run ./cmd/admin demote <user_id>            - Demote user from admin")
		fmt.Println("  go run ./cmd/admin list-admins                 - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "create":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/admin create <email> <password>")
			os.Exit(1)
		}
		createAdmin(db, os.Args[2], os.Args[3])

	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin promote <user_id>")
			os.Exit(1)
		}
		promoteToAdmin(db, os.Args[2])

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin demote <user_id>")
			os.Exit(1)
		}
		demoteFromAdmin(db, os.Args[2])

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func createAdmin(db *gorm.DB, email, password string) {
	user, err := seed.EnsureAdmin(db, email, password)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	fmt.Printf("Admin account ready: %s (ID: %d)\n", user.Email, user.ID)
}

func promoteToAdmin(db *gorm.DB, userID string) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsAdmin {
		fmt.Printf("User %s (ID: %d) is already an admin\n", user.Username, user.ID)
		return
	}

	user.IsAdmin = true
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to promote user: %v", err)
	}

	fmt.Printf("Successfully promoted %s (ID: %d) to admin\n", user.Username, user.ID)
}

func demoteFromAdmin(db *gorm.DB, userID string) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if !user.IsAdmin {
		fmt.Printf("User %s (ID: %d) is not an admin\n", user.Username, user.ID)
		return
	}

	user.IsAdmin = false
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to demote user: %v", err)
	}

	fmt.Printf("Successfully demoted %s (ID: %d) from admin\n", user.Username, user.ID)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return
	}

	fmt.Println("Current admins:")
	for _, admin := range admins {
		fmt.Printf("ID: %d | Username: %s | Email: %s\n", admin.ID, admin.Username, admin.Email)
	}
}
