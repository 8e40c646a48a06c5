package service

import (
	"context"
	"strconv"
	"time"

	"eduverse_backend/internal/config"
	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"
	"eduverse_backend/pkg/logger"
	"eduverse_backend/pkg/monitoring"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RecommendationService struct {
	UserRepo   *repository.UserRepository
	CourseRepo *repository.CourseRepository
	Inference  *InferenceService
	Cache      *repository.CacheRepository
	SimilarTTL time.Duration
}

func NewRecommendationService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	inference *InferenceService,
	cache *repository.CacheRepository,
	cfg config.CacheConfig,
) *RecommendationService {
	return &RecommendationService{
		UserRepo:   userRepo,
		CourseRepo: courseRepo,
		Inference:  inference,
		Cache:      cache,
		SimilarTTL: time.Duration(cfg.SimilarTTLMinutes) * time.Minute,
	}
}

// Recommend ranks the catalog against the user's interests. The service's
// order is kept; ids that no longer resolve are dropped and logged. An empty
// catalog returns without calling out.
func (s *RecommendationService) Recommend(ctx context.Context, userID uint) ([]model.Course, error) {
	if userID == 0 {
		return nil, util.NewValidation("User ID is required")
	}

	var (
		user    *model.User
		courses []model.Course
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.UserRepo.FindByID(userID)
		if err != nil {
			return notFound(err, util.ErrUserNotFound)
		}
		user = u
		return nil
	})
	g.Go(func() error {
		c, err := s.CourseRepo.List()
		courses = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(courses) == 0 {
		return []model.Course{}, nil
	}

	byID := make(map[string]model.Course, len(courses))
	payload := make([]RecommendationCourse, 0, len(courses))
	for _, c := range courses {
		id := strconv.FormatUint(uint64(c.ID), 10)
		byID[id] = c
		tags := []string(c.Tags)
		if tags == nil {
			tags = []string{}
		}
		payload = append(payload, RecommendationCourse{ID: id, Tags: tags})
	}

	ids, err := s.Inference.RecommendCourses(ctx, user.Interests, payload)
	if err != nil {
		return nil, err
	}

	out := make([]model.Course, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			logger.Log.Warn("Dropping recommended course that no longer exists",
				zap.Uint("user_id", userID),
				zap.String("course_id", id),
			)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// SimilarCourses finds external courses close to the given one.
func (s *RecommendationService) SimilarCourses(ctx context.Context, courseID uint) ([]SimilarCourse, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}

	key := repository.SimilarCoursesKey(courseID)
	var cached []SimilarCourse
	hit, err := s.Cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Log.Warn("Similar courses cache read failed", zap.Uint("course_id", courseID), zap.Error(err))
	}
	if s.Cache.Enabled() {
		monitoring.ObserveCache("similar_courses", hit)
	}
	if hit {
		return cached, nil
	}

	similar, err := s.Inference.SimilarCourses(ctx, course.Name, course.Description)
	if err != nil {
		return nil, err
	}

	if s.SimilarTTL > 0 {
		if err := s.Cache.SetJSON(ctx, key, similar, s.SimilarTTL); err != nil {
			logger.Log.Warn("Similar courses cache write failed", zap.Uint("course_id", courseID), zap.Error(err))
		}
	}
	return similar, nil
}
