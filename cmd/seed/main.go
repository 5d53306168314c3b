package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/receipegram/backend/config"
	"github.com/receipegram/backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	email := "demo@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, password, full_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`, username, email, hash, "Demo User").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=%s password=%s\n", userID, username, password)

	var recipeID int64
	err = db.QueryRow(`
		INSERT INTO recipes (user_id, title, description, ingredients, instructions, difficulty, visibility, tags, cooking_time, servings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, userID,
		"Nasi Goreng",
		"Weeknight fried rice with day-old rice.",
		"rice; egg; garlic; sweet soy sauce; shallots",
		"Fry the aromatics, add rice and egg, season, serve hot.",
		"easy", "public", "indonesian,rice,quick", 20, 2,
	).Scan(&recipeID)
	if err != nil {
		log.Fatalf("failed to seed recipe: %v", err)
	}
	fmt.Printf("seeded recipe: id=%d\n", recipeID)
}
