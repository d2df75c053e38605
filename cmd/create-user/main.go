package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"easy_case_app_go/config"
	"easy_case_app_go/db"
	"easy_case_app_go/models"
	"easy_case_app_go/services"

	"golang.org/x/term"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.User{}, &models.Client{}, &models.Case{}, &models.Hearing{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Lawyer Account ===")
	fmt.Println()

	prompt := func(label string) string {
		fmt.Print(label + ": ")
		value, _ := reader.ReadString('\n')
		return strings.TrimSpace(value)
	}

	name := prompt("Name")
	email := strings.ToLower(prompt("Email"))
	mobile := prompt("Mobile (07XXXXXXXX)")
	dobInput := prompt("Date of birth (YYYY-MM-DD)")
	gender := prompt("Gender (Male/Female)")
	barRegNo := prompt("Bar registration number")

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println() // New line after password input

	// Validate inputs
	if name == "" || email == "" || barRegNo == "" {
		log.Fatal("Name, email, and bar registration number are required")
	}
	if !models.IsValidMobile(mobile) {
		log.Fatal("Mobile must be a valid Sri Lankan number (07XXXXXXXX or +947XXXXXXXX)")
	}
	if !models.IsValidGender(gender) {
		log.Fatal("Gender must be Male or Female")
	}
	dob, err := time.Parse("2006-01-02", dobInput)
	if err != nil {
		log.Fatal("Date of birth must be in YYYY-MM-DD format")
	}
	if err := services.ValidatePassword(password); err != nil {
		log.Fatal(err)
	}

	// Check if user already exists
	var existingUser models.User
	if err := db.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		log.Fatalf("User with email %s already exists", email)
	}

	// Hash password
	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Mobile:   mobile,
		DOB:      dob,
		Gender:   gender,
		BarRegNo: barRegNo,
		Password: hashedPassword,
		IsActive: true,
	}

	if err := db.DB.Create(user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Printf("User created successfully (ID: %s)\n", user.ID)
	fmt.Printf("Login at %s with %s\n", cfg.AppURL, user.Email)
}
