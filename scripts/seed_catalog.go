// Loads a YAML course catalog into the database.
//
// Usage: go run scripts/seed_catalog.go -file configs/catalog.yaml
//
// Instructors are matched by email and must already exist as teachers.
// Courses an instructor already has (by name) are skipped.

package main

import (
	"eduverse_backend/internal/config"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/service"
	"eduverse_backend/pkg/database"
	"eduverse_backend/pkg/logger"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	file := flag.String("file", "configs/catalog.yaml", "catalog file")
	flag.Parse()

	godotenv.Load()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}
	catalog, err := service.ParseCatalog(data)
	if err != nil {
		log.Fatalf("Invalid catalog: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	seeder := service.NewCatalogSeeder(repository.NewCourseRepository(db), repository.NewUserRepository(db))
	created, err := seeder.Seed(catalog)
	if err != nil {
		log.Fatalf("Seeding stopped after %d courses: %v", created, err)
	}
	log.Printf("Seeded %d courses", created)
}
