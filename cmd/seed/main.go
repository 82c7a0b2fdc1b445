// Seeds the single admin principal. Safe to run repeatedly - an existing
// username is left untouched.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/Image-Gallery/pkg/postgres"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("config error: %s", err)
		}
	}

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		log.Fatal("PG_URL is required")
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	pg, err := postgres.New(pgURL)
	if err != nil {
		log.Fatalf("seed - postgres.New: %s", err)
	}
	defer pg.Close()

	ctx := context.Background()

	var exists bool
	sql, args, err := pg.Builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("users").
		Where(squirrel.Eq{"username": username}).
		Suffix(")").
		ToSql()
	if err != nil {
		log.Fatalf("seed - pg.Builder.ToSql: %s", err)
	}

	if err := pg.Pool.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		log.Fatalf("seed - pg.Pool.QueryRow: %s", err)
	}

	if exists {
		log.Printf("admin user %q already exists", username)

		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed - bcrypt.GenerateFromPassword: %s", err)
	}

	sql, args, err = pg.Builder.
		Insert("users").
		Columns("id", "username", "password_hash", "created_at").
		Values(uuid.New(), username, string(hash), time.Now()).
		ToSql()
	if err != nil {
		log.Fatalf("seed - pg.Builder.ToSql: %s", err)
	}

	if _, err := pg.Pool.Exec(ctx, sql, args...); err != nil {
		log.Fatalf("seed - pg.Pool.Exec: %s", err)
	}

	log.Printf("admin user %q created", username)
}
