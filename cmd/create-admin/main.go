package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/salesgame/salesgame-api/internal/config"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/salesgame/salesgame-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: create-admin <username> <password>")
		os.Exit(1)
	}

	username := os.Args[1]
	password := os.Args[2]

	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	result, err := db.Pool.Exec(ctx, `
		INSERT INTO users (username, name, password_hash, role, active)
		VALUES ($1, $1, $2, $3, TRUE)
		ON CONFLICT (username) DO UPDATE SET password_hash = $2, role = $3, active = TRUE, updated_at = NOW()
	`, username, string(hash), models.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	if result.RowsAffected() == 0 {
		log.Fatalf("No user created or updated for username: %s", username)
	}

	fmt.Printf("Admin user %s is ready\n", username)
}
