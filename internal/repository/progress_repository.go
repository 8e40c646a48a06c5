package repository

import (
	"time"

	"eduverse_backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByStudentAndCourse(studentID, courseID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Preload("CompletedQuizzes", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Save writes the ledger columns. Completed quizzes are only ever added
// through AddCompletedQuiz.
func (r *ProgressRepository) Save(progress *model.Progress) error {
	return r.DB.Omit("CompletedQuizzes").Save(progress).Error
}

// AddCompletedQuiz links an evaluation to the ledger and reports whether a
// new link was written. Repeating the call for the same evaluation is a no-op.
func (r *ProgressRepository) AddCompletedQuiz(progressID, evaluationID uint, score float64) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.CompletedQuiz{
		ProgressID:   progressID,
		EvaluationID: evaluationID,
		Score:        score,
		CreatedAt:    time.Now(),
	})
	return res.RowsAffected > 0, res.Error
}

func (r *ProgressRepository) CountCompletedQuizzes(progressID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CompletedQuiz{}).Where("progress_id = ?", progressID).Count(&count).Error
	return count, err
}

func (r *ProgressRepository) UpdateRoadmap(progressID uint, roadmap []model.RoadmapEntry) error {
	return r.DB.Model(&model.Progress{}).
		Where("id = ?", progressID).
		Update("personalized_roadmap", datatypes.JSONSlice[model.RoadmapEntry](roadmap)).Error
}
