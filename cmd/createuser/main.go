package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/vobe/voicedesk/domain/entity"
	"github.com/vobe/voicedesk/infrastructure/persistence/postgres"
)

func main() {
	email := flag.String("email", "", "user email (required)")
	passwordFlag := flag.String("password", "", "user password (required)")
	fullName := flag.String("name", "", "full name")
	inactive := flag.Bool("inactive", false, "create the user disabled")
	flag.Parse()

	if *email == "" || *passwordFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	hashed, err := bcrypt.GenerateFromPassword([]byte(*passwordFlag), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := entity.NewUser(uuid.New().String(), *email, *fullName, string(hashed))
	user.IsActive = !*inactive

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := postgres.NewUserRepository(db)
	if err := repo.Create(ctx, user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	log.Printf("created user %s (%s)", user.Email, user.ID)
}
