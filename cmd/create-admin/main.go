package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"lifetrack/database"
	"lifetrack/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := flag.String("username", "admin", "admin account username")
	password := flag.String("password", "", "admin account password (required)")
	email := flag.String("email", "", "admin account email")
	flag.Parse()

	if *password == "" {
		log.Fatal("Usage: create-admin -username admin -password <password> [-email addr]")
	}
	if len(*password) < 6 {
		log.Fatal("Password must be at least 6 characters")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// Promote an existing account, or create a fresh one.
	var user models.User
	if err := db.Where("username = ?", *username).First(&user).Error; err == nil {
		updates := map[string]interface{}{
			"password": string(hash),
			"is_admin": true,
			"is_guest": false,
		}
		if *email != "" {
			updates["email"] = *email
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			log.Fatalf("Failed to promote user: %v", err)
		}
		fmt.Printf("✅ Promoted existing user %q (id=%d) to admin\n", user.Username, user.ID)
		return
	}

	user = models.User{
		Username:  *username,
		Password:  string(hash),
		IsAdmin:   true,
		CreatedAt: time.Now(),
	}
	if *email != "" {
		user.Email = email
	}

	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("✅ Admin account %q created (id=%d)\n", user.Username, user.ID)
}
