package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"eduverse_backend/internal/config"
	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeInference serves canned JSON per endpoint and counts hits.
type fakeInference struct {
	mu        sync.Mutex
	hits      map[string]int
	responses map[string]interface{}
	status    int
	server    *httptest.Server
}

func newFakeInference(t *testing.T) *fakeInference {
	t.Helper()
	f := &fakeInference{
		hits:      map[string]int{},
		responses: map[string]interface{}{},
		status:    http.StatusOK,
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		status := f.status
		body, ok := f.responses[r.URL.Path]
		f.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":"boom"}`))
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeInference) respond(path string, body interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = body
}

func (f *fakeInference) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeInference) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.hits {
		n += c
	}
	return n
}

// memoryCache is an in-process JSONCache that records deletions.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Enabled() bool { return true }

func (c *memoryCache) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (c *memoryCache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

type fixture struct {
	db          *gorm.DB
	fake        *fakeInference
	users       *repository.UserRepository
	courses     *repository.CourseRepository
	enrollments *repository.EnrollmentRepository
	progress    *repository.ProgressRepository
	evaluations *repository.EvaluationRepository
	assignments *repository.AssignmentRepository
	inference   *InferenceService
	leaderboard *LeaderboardService
	enrollment  *EnrollmentService
	quiz        *QuizService
	roadmap     *RoadmapService
	recommend   *RecommendationService
	assignment  *AssignmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	f := &fixture{
		db:          db,
		fake:        newFakeInference(t),
		users:       repository.NewUserRepository(db),
		courses:     repository.NewCourseRepository(db),
		enrollments: repository.NewEnrollmentRepository(db),
		progress:    repository.NewProgressRepository(db),
		evaluations: repository.NewEvaluationRepository(db),
		assignments: repository.NewAssignmentRepository(db),
	}
	cache := repository.NewCacheRepository(nil)
	cacheCfg := config.CacheConfig{LeaderboardTTLSeconds: 60, SimilarTTLMinutes: 60}

	f.inference = NewInferenceService(config.InferenceConfig{BaseURL: f.fake.server.URL, TimeoutSeconds: 5})
	f.leaderboard = NewLeaderboardService(f.courses, f.enrollments, f.users, f.assignments, cache, cacheCfg)
	f.enrollment = NewEnrollmentService(f.users, f.courses, f.enrollments, f.leaderboard)
	f.quiz = NewQuizService(f.courses, f.enrollments, f.progress, f.evaluations, f.inference)
	f.roadmap = NewRoadmapService(f.users, f.courses, f.evaluations, f.progress, f.inference)
	f.recommend = NewRecommendationService(f.users, f.courses, f.inference, cache, cacheCfg)
	f.assignment = NewAssignmentService(f.assignments, f.courses, f.enrollments, f.progress, nil, f.leaderboard)
	return f
}

func (f *fixture) user(t *testing.T, username string, role model.UserRole, interests ...string) *model.User {
	t.Helper()
	u := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		Name:      username,
		Password:  "x",
		Role:      role,
		Interests: interests,
	}
	if err := f.users.Create(u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func (f *fixture) course(t *testing.T, instructor *model.User, name string, modules ...model.Module) *model.Course {
	t.Helper()
	c := &model.Course{Name: name, Description: name + " course", InstructorID: instructor.ID}
	c.SetModules(modules)
	if err := f.courses.Create(c); err != nil {
		t.Fatalf("create course %s: %v", name, err)
	}
	return c
}

func sampleModule() model.Module {
	return model.Module{
		Title:       "Basics",
		Description: "Variables and types",
		Order:       1,
		Contents:    []model.Content{},
		Quiz: model.Quiz{
			PassingScore: 70,
			Questions: []model.Question{
				{Question: "Q1", Options: model.QuestionOptions{A: "x", B: "y"}, Answer: "a", ConceptTags: []string{"vars"}},
				{Question: "Q2", Options: model.QuestionOptions{A: "x", B: "y"}, Answer: "b", ConceptTags: []string{"types"}},
			},
		},
	}
}
