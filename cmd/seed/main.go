package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

var defaultCategories = []string{
	"Technology",
	"Programming",
	"Design",
	"Productivity",
	"Career",
}

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from environment")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	categoryRepo := repository.NewCategoryRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	created, err := seedCategories(ctx, categoryRepo)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Categories seeded (%d new, %d already present)", created, len(defaultCategories)-created)

	if email := os.Getenv("DEMO_EMAIL"); email != "" {
		if err := seedDemoUser(ctx, userRepo, email); err != nil {
			log.Fatalf("Failed to seed demo user: %v", err)
		}
	}

	log.Println("Seed completed successfully!")
}

// seedCategories creates the default categories, skipping names that already exist.
func seedCategories(ctx context.Context, repo repository.CategoryRepository) (int, error) {
	created := 0
	for _, name := range defaultCategories {
		existing, err := repo.FindByName(ctx, name)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, err
		}
		if existing != nil {
			continue
		}

		category := &model.Category{
			Name: name,
			Slug: service.Slugify(name),
		}
		if err := repo.Create(ctx, category); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedDemoUser creates a demo author from DEMO_EMAIL/DEMO_USERNAME/DEMO_PASSWORD
// if no user with that email exists yet.
func seedDemoUser(ctx context.Context, repo repository.UserRepository, email string) error {
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing != nil {
		log.Printf("Demo user %s already exists, skipping", email)
		return nil
	}

	username := os.Getenv("DEMO_USERNAME")
	if username == "" {
		username = "demo"
	}
	password := os.Getenv("DEMO_PASSWORD")
	if password == "" {
		password = "password123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, user); err != nil {
		return err
	}
	log.Printf("Demo user %s created", email)
	return nil
}
