package repository

import (
	"eduverse_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Omit("Submissions").Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.DB.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListByCourse preloads every submission of each assignment.
func (r *AssignmentRepository) ListByCourse(courseID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Preload("Submissions", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) List() ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Order("id ASC").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) FindSubmission(id uint) (*model.Submission, error) {
	var submission model.Submission
	if err := r.DB.First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *AssignmentRepository) FindSubmissionByStudent(assignmentID, studentID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *AssignmentRepository) SaveSubmission(submission *model.Submission) error {
	return r.DB.Save(submission).Error
}
