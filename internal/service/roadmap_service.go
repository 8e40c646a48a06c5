package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"
	"eduverse_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type RoadmapService struct {
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	EvaluationRepo *repository.EvaluationRepository
	ProgressRepo   *repository.ProgressRepository
	Inference      *InferenceService
}

func NewRoadmapService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	evaluationRepo *repository.EvaluationRepository,
	progressRepo *repository.ProgressRepository,
	inference *InferenceService,
) *RoadmapService {
	return &RoadmapService{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		EvaluationRepo: evaluationRepo,
		ProgressRepo:   progressRepo,
		Inference:      inference,
	}
}

// swagger:model Roadmap
type Roadmap struct {
	Performance float64             `json:"performance"`
	Suggestions map[string][]string `json:"suggestions"`
}

// PerformanceRatio is total marks over total attainable marks, in [0,1].
// With nothing graded there is no ratio and ErrInsufficientData is returned.
func PerformanceRatio(evaluations []model.Evaluation) (float64, error) {
	var marks, max float64
	for i := range evaluations {
		marks += evaluations[i].Marks
		max += evaluations[i].MaxMarks()
	}
	if max <= 0 {
		return 0, util.ErrInsufficientData
	}
	ratio := marks / max
	if math.IsNaN(ratio) {
		return 0, util.ErrInsufficientData
	}
	return math.Max(0, math.Min(1, ratio)), nil
}

// roadmapPriority maps weaker performance to a more urgent 1-5 priority.
func roadmapPriority(ratio float64) int {
	return 5 - int(math.Round(ratio*4))
}

func (s *RoadmapService) BuildRoadmap(ctx context.Context, studentID, courseID uint) (*Roadmap, error) {
	var (
		course      *model.Course
		evaluations []model.Evaluation
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.UserRepo.FindByID(studentID)
		return notFound(err, util.ErrUserNotFound)
	})
	g.Go(func() error {
		c, err := s.CourseRepo.FindByID(courseID)
		if err != nil {
			return notFound(err, util.ErrCourseNotFound)
		}
		course = c
		return nil
	})
	g.Go(func() error {
		e, err := s.EvaluationRepo.FindByStudentAndCourse(studentID, courseID)
		evaluations = e
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ratio, err := PerformanceRatio(evaluations)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.Inference.ModuleSuggestions(ctx, ModuleSuggestionRequest{
		Modules:     course.ModuleTitles(),
		Performance: ratio,
		StudentID:   strconv.FormatUint(uint64(studentID), 10),
		CourseID:    strconv.FormatUint(uint64(courseID), 10),
	})
	if err != nil {
		return nil, err
	}

	if err := s.storeRoadmap(course, studentID, ratio, suggestions); err != nil {
		logger.Log.Error("Failed to store personalized roadmap",
			zap.Uint("student_id", studentID),
			zap.Uint("course_id", courseID),
			zap.Error(err),
		)
	}

	return &Roadmap{Performance: ratio, Suggestions: suggestions}, nil
}

// storeRoadmap keeps the suggestions on the student's Progress. Students
// without a ledger get the roadmap in the response only.
func (s *RoadmapService) storeRoadmap(course *model.Course, studentID uint, ratio float64, suggestions map[string][]string) error {
	progress, err := s.ProgressRepo.FindByStudentAndCourse(studentID, course.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	done := make(map[int]map[int]bool, len(progress.ModuleProgress))
	for _, mp := range progress.ModuleProgress {
		set := make(map[int]bool, len(mp.CompletedContents))
		for _, c := range mp.CompletedContents {
			set[c] = true
		}
		done[mp.ModuleIndex] = set
	}

	entries := make([]model.RoadmapEntry, 0, len(suggestions))
	for i, m := range course.ModuleList() {
		items, ok := suggestions[m.Title]
		if !ok {
			continue
		}
		recommended := []int{}
		for ci := range m.Contents {
			if !done[i][ci] {
				recommended = append(recommended, ci)
			}
		}
		entries = append(entries, model.RoadmapEntry{
			ModuleIndex:         i,
			ModuleTitle:         m.Title,
			RecommendedContent:  recommended,
			AdditionalResources: []model.AdditionalResource{},
			Suggestions:         items,
			Priority:            roadmapPriority(ratio),
			Reason:              fmt.Sprintf("Average quiz performance %.0f%%", ratio*100),
		})
	}
	return s.ProgressRepo.UpdateRoadmap(progress.ID, entries)
}
