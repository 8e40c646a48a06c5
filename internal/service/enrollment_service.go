package service

import (
	"context"
	"errors"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Leaderboard    *LeaderboardService
}

func NewEnrollmentService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	leaderboard *LeaderboardService,
) *EnrollmentService {
	return &EnrollmentService{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		Leaderboard:    leaderboard,
	}
}

// Enroll links the student to the course and returns the updated course.
// Re-enrolling after an unenroll reuses the earlier Progress record.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID uint) (*model.Course, error) {
	if courseID == 0 {
		return nil, util.NewValidation("Course ID is required")
	}

	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	if !student.IsStudent() {
		return nil, util.ErrNotAStudent
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}

	if _, err := s.EnrollmentRepo.Enroll(studentID, courseID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}
	s.Leaderboard.Invalidate(ctx, courseID)

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Unenroll removes the pair and returns the updated course. Removing a pair
// that is not enrolled fails with ErrNotEnrolled.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, courseID uint) (*model.Course, error) {
	if courseID == 0 {
		return nil, util.NewValidation("Course ID is required")
	}

	if _, err := s.UserRepo.FindByID(studentID); err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}

	removed, err := s.EnrollmentRepo.Unenroll(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, util.ErrNotEnrolled
	}
	s.Leaderboard.Invalidate(ctx, courseID)

	return s.CourseRepo.FindByID(courseID)
}
