package model

import (
	"time"

	"gorm.io/datatypes"
)

// Evaluation is the graded result of one quiz submission. Submissions are
// additive: re-attempting a quiz creates a new row.
// swagger:model Evaluation
type Evaluation struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	CourseID      uint                        `gorm:"not null;index:idx_eval_student_course" json:"course"`
	StudentID     uint                        `gorm:"not null;index:idx_eval_student_course" json:"student"`
	ModuleIndex   int                         `json:"module"`
	Marks         float64                     `json:"marks"`
	QuestionCount int                         `json:"questionCount"`
	Feedback      datatypes.JSONSlice[string] `json:"evaluation"`
	CreatedAt     time.Time                   `json:"createdAt"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// MaxMarks is two marks per graded question.
func (e *Evaluation) MaxMarks() float64 {
	return float64(2 * e.QuestionCount)
}
