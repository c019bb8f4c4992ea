package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/lfms6164/digital-folder-api/internal/config"
	"github.com/lfms6164/digital-folder-api/internal/db"
	"github.com/lfms6164/digital-folder-api/internal/logger"
	"github.com/lfms6164/digital-folder-api/internal/models"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run scripts/create_user.go <username> <password> <role>")
		fmt.Println("Roles: ADMIN, USER, VIEWER")
		os.Exit(1)
	}

	username := os.Args[1]
	password := os.Args[2]
	role := models.UserRole(os.Args[3])

	if !role.Valid() {
		log.Fatalf("invalid role %q (valid: ADMIN, USER, VIEWER)", role)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize logger
	logger.Init(cfg.Log.Format, cfg.Log.Level)

	// Initialize database
	database, err := db.New(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	// Run migrations to ensure tables exist
	if err := db.Migrate(database); err != nil {
		log.Fatal(err)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	user := models.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := database.Create(&user).Error; err != nil {
		log.Fatal(err)
	}

	fmt.Printf("✅ User created successfully!\n")
	fmt.Printf("ID: %s\n", user.ID)
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Role: %s\n", user.Role)
	fmt.Printf("\nYou can now login with:\n")
	fmt.Printf("  curl -X POST http://localhost:8000/api/auth/login \\\n")
	fmt.Printf("    -H \"Content-Type: application/json\" \\\n")
	fmt.Printf("    -d '{\"username\": \"%s\", \"password\": \"%s\"}'\n", username, password)
}
