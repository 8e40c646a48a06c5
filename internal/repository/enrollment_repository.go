package repository

import (
	"eduverse_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Enroll inserts the enrollment row and makes sure exactly one Progress exists
// for the pair, all in one transaction. A second enrollment of the same pair
// fails with gorm.ErrDuplicatedKey from the composite primary key.
func (r *EnrollmentRepository) Enroll(studentID, courseID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Enrollment{StudentID: studentID, CourseID: courseID}).Error; err != nil {
			return err
		}
		return tx.Where(model.Progress{StudentID: studentID, CourseID: courseID}).
			Attrs(model.NewProgress(studentID, courseID)).
			FirstOrCreate(&progress).Error
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Unenroll reports whether a row was removed. Progress is kept.
func (r *EnrollmentRepository) Unenroll(studentID, courseID uint) (bool, error) {
	res := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		Delete(&model.Enrollment{})
	return res.RowsAffected > 0, res.Error
}

func (r *EnrollmentRepository) Exists(studentID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

// StudentIDs lists the course's students in enrollment order.
func (r *EnrollmentRepository) StudentIDs(courseID uint) ([]uint, error) {
	ids := []uint{}
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).
		Order("created_at ASC, student_id ASC").
		Pluck("student_id", &ids).Error
	return ids, err
}
