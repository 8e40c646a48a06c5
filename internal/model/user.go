package model

import "gorm.io/datatypes"

type UserRole string

const (
	Student UserRole = "Student"
	Teacher UserRole = "Teacher"
	Admin   UserRole = "Admin"
)

type DateOfBirth struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// swagger:model User
type User struct {
	BaseModel
	Username  string                      `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string                      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name      string                      `gorm:"size:100;not null" json:"name"`
	Password  string                      `gorm:"size:100;not null" json:"-"`
	Role      UserRole                    `gorm:"size:20;not null;index" json:"role"`
	About     string                      `gorm:"type:text" json:"about"`
	Interests datatypes.JSONSlice[string] `json:"interests"`
	Image     ImageRef                    `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	DOB       DateOfBirth                 `gorm:"embedded;embeddedPrefix:dob_" json:"dob"`

	// projection of course_enrollments, filled by the repository
	EnrolledCourses []uint `gorm:"-" json:"enrolledCourses"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsStudent() bool {
	return u.Role == Student
}

func (u *User) IsTeacher() bool {
	return u.Role == Teacher
}
