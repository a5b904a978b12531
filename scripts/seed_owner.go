package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/hoangvle/scholarfolio/pkg/auth"
)

func main() {
	fmt.Println("adding owner into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")
	OWNER_EMAIL := os.Getenv("OWNER_EMAIL")
	OWNER_PASSWORD := os.Getenv("OWNER_PASSWORD")

	hash, err := auth.HashPassword(OWNER_PASSWORD)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	// RETURNING reports the row's actual id, which on the conflict
	// path is the pre-existing one, not the freshly generated value.
	query := `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = $3
		RETURNING id
	`
	var ownerID uuid.UUID
	err = pool.QueryRow(context.Background(), query, uuid.New(), OWNER_EMAIL, hash).Scan(&ownerID)
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("added or updated owner '%s' (set OWNER_ID=%s for the server)\n", OWNER_EMAIL, ownerID)
}
