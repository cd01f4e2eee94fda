// Command seedadmin creates the administrator account. Only one admin may
// exist; running it again after the admin is present is a no-op.
//
//	QUOTELY_ADMIN_PASSWORD=... seedadmin -email admin@example.com
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"quotely/internal/config"
	"quotely/internal/domain"
	"quotely/internal/repository/postgres"
	"quotely/internal/service"
)

func main() {
	email := flag.String("email", os.Getenv("QUOTELY_ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("QUOTELY_ADMIN_PASSWORD"), "admin password (prefer QUOTELY_ADMIN_PASSWORD)")
	username := flag.String("username", "admin", "admin display name")
	business := flag.String("business", "", "business name printed on documents")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("an email and a password of at least 8 characters are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &domain.User{
		Email:        *email,
		PasswordHash: hash,
		Username:     *username,
		BusinessName: *business,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	err = postgres.NewUserRepo(db).Create(context.Background(), admin)
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrAdminExists):
		log.Printf("admin not created: %v", err)
	case err != nil:
		log.Fatalf("failed to create admin: %v", err)
	default:
		log.Printf("created admin %s (%s)", admin.Email, admin.ID)
	}
}
