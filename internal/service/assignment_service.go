package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	Storage        *StorageService
	Leaderboard    *LeaderboardService
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	storage *StorageService,
	leaderboard *LeaderboardService,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		Storage:        storage,
		Leaderboard:    leaderboard,
	}
}

const defaultMaxMarks = 10

type CreateAssignmentInput struct {
	CourseID    uint
	Title       string
	Description string
	DueDate     *time.Time
	MaxMarks    float64
}

func (s *AssignmentService) Create(in CreateAssignmentInput) (*model.Assignment, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.CourseID == 0 || in.Title == "" {
		return nil, util.NewValidation("Course and title are required")
	}
	if in.MaxMarks < 0 {
		return nil, util.NewValidation("Max marks cannot be negative")
	}
	if in.MaxMarks == 0 {
		in.MaxMarks = defaultMaxMarks
	}
	if _, err := s.CourseRepo.FindByID(in.CourseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}

	assignment := &model.Assignment{
		CourseID:    in.CourseID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		MaxMarks:    in.MaxMarks,
	}
	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	assignment.Submissions = []model.Submission{}
	return assignment, nil
}

func (s *AssignmentService) ListByCourse(courseID uint) ([]model.Assignment, error) {
	if courseID == 0 {
		return nil, util.NewValidation("Course ID is required")
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	return s.AssignmentRepo.ListByCourse(courseID)
}

func (s *AssignmentService) List() ([]model.Assignment, error) {
	return s.AssignmentRepo.List()
}

// Submit stores the student's work. A second submission replaces the file
// and clears any grade.
func (s *AssignmentService) Submit(ctx context.Context, assignmentID, studentID uint, file *multipart.FileHeader) (*model.Submission, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, notFound(err, util.ErrAssignmentNotFound)
	}

	enrolled, err := s.EnrollmentRepo.Exists(studentID, assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	submission, err := s.AssignmentRepo.FindSubmissionByStudent(assignmentID, studentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if submission == nil {
		sid := studentID
		submission = &model.Submission{AssignmentID: assignmentID, StudentID: &sid}
	}

	oldFile := submission.File
	if file != nil {
		ref, err := s.Storage.UploadMultipart(ctx, util.FolderSubmissions, file,
			[]string{".pdf", ".zip", ".txt", ".md", ".doc", ".docx", ".png", ".jpg", ".jpeg"})
		if err != nil {
			return nil, err
		}
		submission.File = ref
	}
	submission.Grade = nil
	submission.GradedAt = nil
	submission.SubmittedAt = time.Now()

	err = s.AssignmentRepo.SaveSubmission(submission)
	if errors.Is(err, gorm.ErrDuplicatedKey) && submission.ID == 0 {
		// a concurrent first submission won the insert; replace its row instead
		var existing *model.Submission
		existing, err = s.AssignmentRepo.FindSubmissionByStudent(assignmentID, studentID)
		if err == nil {
			submission.ID = existing.ID
			submission.CreatedAt = existing.CreatedAt
			if file == nil {
				submission.File = existing.File
			}
			oldFile = existing.File
			err = s.AssignmentRepo.SaveSubmission(submission)
		}
	}
	if err != nil {
		if file != nil {
			s.Storage.Delete(ctx, submission.File.PublicID)
		}
		return nil, err
	}
	if file != nil && oldFile.PublicID != "" && oldFile.PublicID != submission.File.PublicID {
		s.Storage.Delete(ctx, oldFile.PublicID)
	}

	if err := s.markCompleted(studentID, assignment); err != nil {
		return nil, err
	}
	s.Leaderboard.Invalidate(ctx, assignment.CourseID)
	return submission, nil
}

func (s *AssignmentService) markCompleted(studentID uint, assignment *model.Assignment) error {
	progress, err := s.ProgressRepo.FindByStudentAndCourse(studentID, assignment.CourseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, id := range progress.CompletedAssignments {
		if id == assignment.ID {
			return nil
		}
	}
	progress.CompletedAssignments = append(progress.CompletedAssignments, assignment.ID)
	touchStreak(progress, time.Now())
	return s.ProgressRepo.Save(progress)
}

// Grade sets the grade of a submission, bounded by the assignment's max marks.
func (s *AssignmentService) Grade(ctx context.Context, submissionID uint, grade float64) (*model.Submission, error) {
	submission, err := s.AssignmentRepo.FindSubmission(submissionID)
	if err != nil {
		return nil, notFound(err, util.ErrSubmissionNotFound)
	}
	assignment, err := s.AssignmentRepo.FindByID(submission.AssignmentID)
	if err != nil {
		return nil, notFound(err, util.ErrAssignmentNotFound)
	}
	if grade < 0 || grade > assignment.MaxMarks {
		return nil, util.ErrInvalidGrade
	}

	now := time.Now()
	submission.Grade = &grade
	submission.GradedAt = &now
	if err := s.AssignmentRepo.SaveSubmission(submission); err != nil {
		return nil, err
	}
	s.Leaderboard.Invalidate(ctx, assignment.CourseID)
	return submission, nil
}
