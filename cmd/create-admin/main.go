// Command create-admin inserts an admin account with random credentials and
// prints them once.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/config"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/database"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/utilities"
)

// generateRandomString creates a random hex string of n bytes.
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

// generateUniqueEmail tries until an unused admin email is found.
func generateUniqueEmail(db *gorm.DB) string {
	for {
		email := fmt.Sprintf("admin_%s@jobboard.local", generateRandomString(4))
		var count int64
		db.Model(&model.User{}).Where("email = ?", email).Count(&count)
		if count == 0 {
			return email
		}
	}
}

func main() {
	cfg := config.Load()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}
	defer db.Close()

	email := generateUniqueEmail(db.DB)
	password := generateRandomString(8)

	hashed, err := utilities.HashPassword(password)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	admin := model.User{
		Name:     "Admin",
		Email:    email,
		Password: hashed,
		Role:     model.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin: ", err)
	}

	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email:    %s\n", admin.Email)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")
}
