package repository

import (
	"eduverse_backend/internal/model"

	"gorm.io/gorm"
)

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) Create(evaluation *model.Evaluation) error {
	return r.DB.Create(evaluation).Error
}

func (r *EvaluationRepository) FindByStudentAndCourse(studentID, courseID uint) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("created_at ASC, id ASC").
		Find(&evaluations).Error
	return evaluations, err
}
