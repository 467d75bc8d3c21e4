package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"business-hub-backend/internal/auth"
	"business-hub-backend/internal/config"
	"business-hub-backend/internal/database"
	"business-hub-backend/internal/database/models"

	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type UserData struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Photo    string `yaml:"photo,omitempty"`
}

type CompanyData struct {
	Name        string `yaml:"name"`
	OwnerEmail  string `yaml:"owner_email"`
	Email       string `yaml:"email,omitempty"`
	Phone       string `yaml:"phone,omitempty"`
	Industry    string `yaml:"industry,omitempty"`
	Website     string `yaml:"website,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type MemberData struct {
	Email    string `yaml:"email"`
	Company  string `yaml:"company"`
	Role     string `yaml:"role"`
	Position string `yaml:"position,omitempty"`
}

type ProjectData struct {
	Company     string `yaml:"company"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
}

type SeedFile struct {
	Users     []UserData    `yaml:"users"`
	Companies []CompanyData `yaml:"companies"`
	Members   []MemberData  `yaml:"members"`
	Projects  []ProjectData `yaml:"projects"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seed, err := loadSeedFile(filepath.Join("scripts", "data", "seed.yaml"))
	if err != nil {
		log.Fatalf("Failed to read seed data: %v", err)
	}

	if err := loadData(db, auth.NewHasher(cfg.BcryptCost), seed); err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &seed, nil
}

func loadData(db *gorm.DB, hasher *auth.Hasher, seed *SeedFile) error {
	users := make(map[string]*models.User)
	created := 0
	for _, data := range seed.Users {
		user, isNew, err := createUser(db, hasher, data)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", data.Email, err)
		}
		users[user.Email] = user
		if isNew {
			created++
		}
	}
	log.Printf("Users: %d created, %d total", created, len(seed.Users))

	companies := make(map[string]*models.Company)
	created = 0
	for _, data := range seed.Companies {
		company, isNew, err := createCompany(db, data, users)
		if err != nil {
			return fmt.Errorf("failed to create company %s: %w", data.Name, err)
		}
		companies[data.Name] = company
		if isNew {
			created++
		}
	}
	log.Printf("Companies: %d created, %d total", created, len(seed.Companies))

	created = 0
	for _, data := range seed.Members {
		isNew, err := createMember(db, data, users, companies)
		if err != nil {
			log.Printf("Warning: failed to add member %s: %v", data.Email, err)
			continue
		}
		if isNew {
			created++
		}
	}
	log.Printf("Members: %d created, %d total", created, len(seed.Members))

	created = 0
	for _, data := range seed.Projects {
		isNew, err := createProject(db, data, companies)
		if err != nil {
			log.Printf("Warning: failed to create project %s: %v", data.Title, err)
			continue
		}
		if isNew {
			created++
		}
	}
	log.Printf("Projects: %d created, %d total", created, len(seed.Projects))

	return nil
}

func createUser(db *gorm.DB, hasher *auth.Hasher, data UserData) (*models.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	hash, err := hasher.Hash(data.Password)
	if err != nil {
		return nil, false, err
	}
	user := &models.User{
		Email:    email,
		Name:     data.Name,
		Password: hash,
		Photo:    data.Photo,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// createCompany also makes the owner the founding Admin
func createCompany(db *gorm.DB, data CompanyData, users map[string]*models.User) (*models.Company, bool, error) {
	owner, ok := users[strings.ToLower(data.OwnerEmail)]
	if !ok {
		return nil, false, fmt.Errorf("owner %s not found", data.OwnerEmail)
	}

	var existing models.Company
	err := db.Where("slug = ?", slug.Make(data.Name)).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	company := &models.Company{
		Name:        data.Name,
		Slug:        slug.Make(data.Name),
		Email:       data.Email,
		Phone:       data.Phone,
		Industry:    data.Industry,
		Website:     data.Website,
		Description: data.Description,
		OwnerID:     owner.ID,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owner", "Members").Create(company).Error; err != nil {
			return err
		}
		founder := &models.CompanyMember{
			UserID:    owner.ID,
			CompanyID: company.ID,
			Role:      models.MemberRoleAdmin,
			Position:  "Founder",
		}
		return tx.Omit("User").Create(founder).Error
	})
	if err != nil {
		return nil, false, err
	}
	return company, true, nil
}

func createMember(db *gorm.DB, data MemberData, users map[string]*models.User, companies map[string]*models.Company) (bool, error) {
	user, ok := users[strings.ToLower(data.Email)]
	if !ok {
		return false, fmt.Errorf("user %s not found", data.Email)
	}
	company, ok := companies[data.Company]
	if !ok {
		return false, fmt.Errorf("company %s not found", data.Company)
	}
	role, ok := models.ParseMemberRole(data.Role)
	if !ok {
		role = models.MemberRoleMember
	}

	var existing models.CompanyMember
	err := db.Where("user_id = ?", user.ID).First(&existing).Error
	if err == nil {
		if existing.CompanyID != company.ID {
			return false, fmt.Errorf("already a member of another company")
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	position := data.Position
	if position == "" {
		position = "Employee"
	}
	member := &models.CompanyMember{
		UserID:    user.ID,
		CompanyID: company.ID,
		Role:      role,
		Position:  position,
	}
	if err := db.Omit("User").Create(member).Error; err != nil {
		return false, err
	}
	return true, nil
}

func createProject(db *gorm.DB, data ProjectData, companies map[string]*models.Company) (bool, error) {
	company, ok := companies[data.Company]
	if !ok {
		return false, fmt.Errorf("company %s not found", data.Company)
	}

	var count int64
	if err := db.Model(&models.Project{}).Where("company_id = ? AND title = ?", company.ID, data.Title).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	project := &models.Project{
		CompanyID:   company.ID,
		Title:       data.Title,
		Description: data.Description,
	}
	if err := db.Omit("Company").Create(project).Error; err != nil {
		return false, err
	}
	return true, nil
}
