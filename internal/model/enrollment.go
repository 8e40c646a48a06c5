package model

import "time"

// Enrollment is the single source of Course.Students and User.EnrolledCourses.
// The composite primary key rejects a second enrollment of the same pair.
type Enrollment struct {
	StudentID uint      `gorm:"primaryKey;autoIncrement:false" json:"studentId"`
	CourseID  uint      `gorm:"primaryKey;autoIncrement:false;index" json:"courseId"`
	CreatedAt time.Time `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "course_enrollments"
}
