package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"eduverse_backend/internal/config"
	"eduverse_backend/internal/model"
	"eduverse_backend/internal/util"
	"eduverse_backend/pkg/logger"
	"eduverse_backend/pkg/monitoring"
	"eduverse_backend/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

const (
	endpointRecommendations   = "/courses/recommendations"
	endpointSimilarCourses    = "/find-similar-courses"
	endpointQuiz              = "/quiz"
	endpointQuizFeedback      = "/quiz/feedback"
	endpointRoadmap           = "/roadmap"
	endpointModuleSuggestions = "/generate-module-suggestions"
)

// InferenceService talks to the recommendation / quiz / roadmap service.
// Every failure, including timeouts and non-2xx answers, is reported as
// util.ErrDependencyUnavailable. Calls are never retried.
type InferenceService struct {
	mu      sync.RWMutex
	baseURL string
	timeout time.Duration
	client  *http.Client
}

func NewInferenceService(cfg config.InferenceConfig) *InferenceService {
	s := &InferenceService{client: &http.Client{}}
	s.Reload(cfg)
	return s
}

// Reload swaps the base URL and timeout, used by the config watcher.
func (s *InferenceService) Reload(cfg config.InferenceConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	s.timeout = cfg.Timeout()
}

func (s *InferenceService) settings() (string, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL, s.timeout
}

func (s *InferenceService) post(ctx context.Context, endpoint string, payload, out interface{}) (err error) {
	baseURL, timeout := s.settings()

	ctx, span := tracing.Tracer.Start(ctx, "inference "+endpoint)
	span.SetAttributes(attribute.String("inference.endpoint", endpoint))
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Log.Warn("Inference call failed",
				zap.String("endpoint", endpoint),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			err = fmt.Errorf("%w: %s: %v", util.ErrDependencyUnavailable, endpoint, err)
		}
		monitoring.ObserveInference(endpoint, outcome, time.Since(start))
		span.End()
	}()

	if baseURL == "" {
		return fmt.Errorf("inference base url not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type RecommendationCourse struct {
	ID   string   `json:"_id"`
	Tags []string `json:"tags"`
}

type recommendationRequest struct {
	UserInterests []string               `json:"userInterests"`
	Courses       []RecommendationCourse `json:"courses"`
}

type recommendationResponse struct {
	Courses []struct {
		ID string `json:"_id"`
	} `json:"courses"`
}

// RecommendCourses returns course ids in the order the service ranked them.
func (s *InferenceService) RecommendCourses(ctx context.Context, interests []string, courses []RecommendationCourse) ([]string, error) {
	if interests == nil {
		interests = []string{}
	}
	var resp recommendationResponse
	if err := s.post(ctx, endpointRecommendations, recommendationRequest{
		UserInterests: interests,
		Courses:       courses,
	}, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Courses))
	for _, c := range resp.Courses {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// SimilarCourse is an external course suggested by the service.
type SimilarCourse struct {
	Title     string      `json:"title"`
	Platform  string      `json:"platform,omitempty"`
	URL       string      `json:"url,omitempty"`
	Relevance json.Number `json:"relevance,omitempty"`
}

type similarCoursesRequest struct {
	CourseTitle       string `json:"courseTitle"`
	CourseDescription string `json:"courseDescription"`
}

func (s *InferenceService) SimilarCourses(ctx context.Context, title, description string) ([]SimilarCourse, error) {
	var resp struct {
		SimilarCourses []SimilarCourse `json:"similarCourses"`
	}
	if err := s.post(ctx, endpointSimilarCourses, similarCoursesRequest{
		CourseTitle:       title,
		CourseDescription: description,
	}, &resp); err != nil {
		return nil, err
	}
	if resp.SimilarCourses == nil {
		resp.SimilarCourses = []SimilarCourse{}
	}
	return resp.SimilarCourses, nil
}

type descriptionRequest struct {
	Description string `json:"description"`
}

// GenerateQuiz returns the raw questions. Callers validate them.
func (s *InferenceService) GenerateQuiz(ctx context.Context, description string) ([]model.Question, error) {
	var resp struct {
		Quiz []model.Question `json:"quiz"`
	}
	if err := s.post(ctx, endpointQuiz, descriptionRequest{Description: description}, &resp); err != nil {
		return nil, err
	}
	return resp.Quiz, nil
}

// AnsweredQuestion is one question of a quiz submission as sent for grading.
type AnsweredQuestion struct {
	Question       string                `json:"question"`
	Options        model.QuestionOptions `json:"options"`
	Answer         string                `json:"answer"`
	SelectedOption string                `json:"selectedOption"`
	ConceptTags    []string              `json:"conceptTags,omitempty"`
}

// QuizFeedback returns one feedback string per graded question.
func (s *InferenceService) QuizFeedback(ctx context.Context, questions []AnsweredQuestion) ([]string, error) {
	var resp struct {
		Feedback []struct {
			Feedback string `json:"feedback"`
		} `json:"feedback"`
	}
	if err := s.post(ctx, endpointQuizFeedback, struct {
		Questions []AnsweredQuestion `json:"questions"`
	}{Questions: questions}, &resp); err != nil {
		return nil, err
	}

	feedback := make([]string, 0, len(resp.Feedback))
	for _, f := range resp.Feedback {
		feedback = append(feedback, f.Feedback)
	}
	return feedback, nil
}

// GenerateRoadmap asks for a module plan built from a course description.
func (s *InferenceService) GenerateRoadmap(ctx context.Context, description string) ([]model.Module, error) {
	var resp struct {
		Modules []model.Module `json:"modules"`
	}
	if err := s.post(ctx, endpointRoadmap, descriptionRequest{Description: description}, &resp); err != nil {
		return nil, err
	}
	return resp.Modules, nil
}

type ModuleSuggestionRequest struct {
	Modules     []string `json:"modules"`
	Performance float64  `json:"performance"`
	StudentID   string   `json:"student_id"`
	CourseID    string   `json:"course_id"`
}

// ModuleSuggestions returns suggestions keyed by module title.
func (s *InferenceService) ModuleSuggestions(ctx context.Context, req ModuleSuggestionRequest) (map[string][]string, error) {
	if req.Modules == nil {
		req.Modules = []string{}
	}
	var resp struct {
		Suggestions map[string][]string `json:"suggestions"`
	}
	if err := s.post(ctx, endpointModuleSuggestions, req, &resp); err != nil {
		return nil, err
	}
	if resp.Suggestions == nil {
		resp.Suggestions = map[string][]string{}
	}
	return resp.Suggestions, nil
}
