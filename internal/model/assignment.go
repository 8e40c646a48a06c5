package model

import "time"

// swagger:model Assignment
type Assignment struct {
	BaseModel
	CourseID    uint         `gorm:"index;not null" json:"course"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	DueDate     *time.Time   `json:"dueDate"`
	MaxMarks    float64      `gorm:"default:10" json:"maxMarks"`
	Submissions []Submission `gorm:"foreignKey:AssignmentID" json:"submissions,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// Submission.StudentID and Grade are nullable: legacy rows may lack either and
// are skipped by the leaderboard. A student has at most one submission per
// assignment.
type Submission struct {
	BaseModel
	AssignmentID uint       `gorm:"uniqueIndex:idx_submission_student;not null" json:"assignment"`
	StudentID    *uint      `gorm:"uniqueIndex:idx_submission_student;index" json:"student"`
	File         ImageRef   `gorm:"embedded;embeddedPrefix:file_" json:"file"`
	Grade        *float64   `json:"grade"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	GradedAt     *time.Time `json:"gradedAt"`
}

func (Submission) TableName() string {
	return "assignment_submissions"
}
