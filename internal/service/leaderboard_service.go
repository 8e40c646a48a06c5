package service

import (
	"context"
	"time"

	"eduverse_backend/internal/config"
	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"
	"eduverse_backend/pkg/logger"
	"eduverse_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// swagger:model LeaderboardEntry
type LeaderboardEntry struct {
	StudentName string  `json:"studentName"`
	StudentID   uint    `json:"studentId"`
	TotalMarks  float64 `json:"totalMarks"`
}

// ComputeLeaderboard sums graded submissions per enrolled student. The result
// has one entry per student, in the order given. Submissions without a
// student or a grade are skipped, and so are submissions from students who
// are not in the list; those are logged.
func ComputeLeaderboard(courseID uint, students []model.User, assignments []model.Assignment) []LeaderboardEntry {
	board := make([]LeaderboardEntry, 0, len(students))
	index := make(map[uint]int, len(students))
	for _, st := range students {
		if _, dup := index[st.ID]; dup {
			continue
		}
		index[st.ID] = len(board)
		board = append(board, LeaderboardEntry{StudentName: st.Name, StudentID: st.ID})
	}

	for _, a := range assignments {
		for _, sub := range a.Submissions {
			if sub.StudentID == nil || sub.Grade == nil {
				logger.Log.Debug("Skipping ungraded submission",
					zap.Uint("course_id", courseID),
					zap.Uint("assignment_id", a.ID),
					zap.Uint("submission_id", sub.ID),
				)
				continue
			}
			i, ok := index[*sub.StudentID]
			if !ok {
				logger.Log.Warn("Skipping submission from student not enrolled in course",
					zap.Uint("course_id", courseID),
					zap.Uint("assignment_id", a.ID),
					zap.Uint("student_id", *sub.StudentID),
				)
				continue
			}
			board[i].TotalMarks += *sub.Grade
		}
	}
	return board
}

// JSONCache is the part of repository.CacheRepository the leaderboard uses.
type JSONCache interface {
	Enabled() bool
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type LeaderboardService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	UserRepo       *repository.UserRepository
	AssignmentRepo *repository.AssignmentRepository
	Cache          JSONCache
	TTL            time.Duration
}

func NewLeaderboardService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
	assignmentRepo *repository.AssignmentRepository,
	cache *repository.CacheRepository,
	cfg config.CacheConfig,
) *LeaderboardService {
	return &LeaderboardService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		UserRepo:       userRepo,
		AssignmentRepo: assignmentRepo,
		Cache:          cache,
		TTL:            time.Duration(cfg.LeaderboardTTLSeconds) * time.Second,
	}
}

func (s *LeaderboardService) Leaderboard(ctx context.Context, courseID uint) ([]LeaderboardEntry, error) {
	key := repository.LeaderboardKey(courseID)
	var cached []LeaderboardEntry
	hit, err := s.Cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Log.Warn("Leaderboard cache read failed", zap.Uint("course_id", courseID), zap.Error(err))
	}
	if s.Cache.Enabled() {
		monitoring.ObserveCache("leaderboard", hit)
	}
	if hit {
		return cached, nil
	}

	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}

	studentIDs, err := s.EnrollmentRepo.StudentIDs(courseID)
	if err != nil {
		return nil, err
	}
	users, err := s.UserRepo.FindByIDs(studentIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	students := make([]model.User, 0, len(studentIDs))
	for _, id := range studentIDs {
		u, ok := byID[id]
		if !ok {
			logger.Log.Warn("Enrolled student no longer exists", zap.Uint("course_id", courseID), zap.Uint("student_id", id))
			continue
		}
		students = append(students, u)
	}

	assignments, err := s.AssignmentRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	board := ComputeLeaderboard(courseID, students, assignments)
	if s.TTL > 0 {
		if err := s.Cache.SetJSON(ctx, key, board, s.TTL); err != nil {
			logger.Log.Warn("Leaderboard cache write failed", zap.Uint("course_id", courseID), zap.Error(err))
		}
	}
	return board, nil
}

// Invalidate drops the cached boards after grading, enrollment or renaming
// changes.
func (s *LeaderboardService) Invalidate(ctx context.Context, courseIDs ...uint) {
	if len(courseIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(courseIDs))
	for _, id := range courseIDs {
		keys = append(keys, repository.LeaderboardKey(id))
	}
	if err := s.Cache.Delete(ctx, keys...); err != nil {
		logger.Log.Warn("Leaderboard cache invalidation failed", zap.Uints("course_ids", courseIDs), zap.Error(err))
	}
}
