package service

import (
	"errors"
	"fmt"
	"strings"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type CatalogModule struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type CatalogCourse struct {
	Name            string          `yaml:"name"`
	Description     string          `yaml:"description"`
	InstructorEmail string          `yaml:"instructor_email"`
	Tags            []string        `yaml:"tags"`
	Price           float64         `yaml:"price"`
	Duration        string          `yaml:"duration"`
	Difficulty      int             `yaml:"difficulty"`
	Modules         []CatalogModule `yaml:"modules"`
}

type Catalog struct {
	Courses []CatalogCourse `yaml:"courses"`
}

// ParseCatalog decodes a YAML course catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, c := range catalog.Courses {
		if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Description) == "" || strings.TrimSpace(c.InstructorEmail) == "" {
			return nil, fmt.Errorf("catalog course %d: name, description and instructor_email are required", i)
		}
	}
	return &catalog, nil
}

type CatalogSeeder struct {
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
}

func NewCatalogSeeder(courseRepo *repository.CourseRepository, userRepo *repository.UserRepository) *CatalogSeeder {
	return &CatalogSeeder{CourseRepo: courseRepo, UserRepo: userRepo}
}

// Seed creates the catalog's courses and returns how many were created.
// A course whose instructor already has one with the same name is skipped,
// so running the seed twice is harmless.
func (s *CatalogSeeder) Seed(catalog *Catalog) (int, error) {
	created := 0
	for _, entry := range catalog.Courses {
		email := strings.ToLower(strings.TrimSpace(entry.InstructorEmail))
		instructor, err := s.UserRepo.FindByEmail(email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("Skipping catalog course with unknown instructor",
				zap.String("course", entry.Name),
				zap.String("instructor", email),
			)
			continue
		}
		if err != nil {
			return created, err
		}
		if !instructor.IsTeacher() {
			logger.Log.Warn("Skipping catalog course whose instructor is not a teacher",
				zap.String("course", entry.Name),
				zap.String("instructor", email),
			)
			continue
		}

		existing, err := s.CourseRepo.ListByInstructor(instructor.ID)
		if err != nil {
			return created, err
		}
		name := strings.TrimSpace(entry.Name)
		if hasCourseNamed(existing, name) {
			continue
		}

		modules := make([]model.Module, 0, len(entry.Modules))
		for _, m := range entry.Modules {
			modules = append(modules, model.Module{Title: m.Title, Description: m.Description})
		}
		course := &model.Course{
			Name:         name,
			Description:  strings.TrimSpace(entry.Description),
			InstructorID: instructor.ID,
			Tags:         normalizeTags(entry.Tags),
			Price:        entry.Price,
			Duration:     entry.Duration,
			Difficulty:   entry.Difficulty,
		}
		course.SetModules(normalizeModules(modules))
		if err := s.CourseRepo.Create(course); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func hasCourseNamed(courses []model.Course, name string) bool {
	for _, c := range courses {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
