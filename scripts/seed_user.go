package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/darshil-dcis/career-copilot-api/pkg/auth"
)

// Seeds a local dev account. Run with DB_DSN, SEED_EMAIL and SEED_PASSWORD set.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	if dsn == "" || email == "" || password == "" {
		log.Fatal("DB_DSN, SEED_EMAIL and SEED_PASSWORD are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = $3
	`
	if _, err := pool.Exec(context.Background(), query, uuid.New(), email, hash); err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("seeded user '%s'\n", email)
}
