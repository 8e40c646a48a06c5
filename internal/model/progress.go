package model

import (
	"time"

	"gorm.io/datatypes"
)

type AnswerRecord struct {
	QuestionIndex  int      `json:"questionIndex"`
	SelectedOption string   `json:"selectedOption"`
	Correct        bool     `json:"correct"`
	ConceptTags    []string `json:"conceptTags"`
}

type QuizAttempt struct {
	EvaluationID uint           `json:"evaluationId"`
	Date         time.Time      `json:"date"`
	Score        float64        `json:"score"`
	Answers      []AnswerRecord `json:"answers"`
}

type ModuleProgress struct {
	ModuleIndex       int           `json:"moduleIndex"`
	Completed         bool          `json:"completed"`
	CompletedContents []int         `json:"completedContents"`
	QuizAttempts      []QuizAttempt `json:"quizAttempts"`
	LastQuizScore     float64       `json:"lastQuizScore"`
}

type ConceptMastery struct {
	ConceptTag      string    `json:"conceptTag"`
	MasteryLevel    float64   `json:"masteryLevel"`
	ConfidenceScore float64   `json:"confidenceScore"`
	NeedsReview     bool      `json:"needsReview"`
	Attempts        int       `json:"attempts"`
	Correct         int       `json:"correct"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

type ResourceType string

const (
	ResourceVideo    ResourceType = "video"
	ResourceReading  ResourceType = "reading"
	ResourcePractice ResourceType = "practice"
	ResourceOther    ResourceType = "other"
)

type AdditionalResource struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	URL         string       `json:"url"`
	Type        ResourceType `json:"type"`
	ConceptTags []string     `json:"conceptTags"`
	Priority    int          `json:"priority"`
}

type RoadmapEntry struct {
	ModuleIndex         int                  `json:"moduleIndex"`
	ModuleTitle         string               `json:"moduleTitle"`
	RecommendedContent  []int                `json:"recommendedContent"`
	AdditionalResources []AdditionalResource `json:"additionalResources"`
	Suggestions         []string             `json:"suggestions"`
	Priority            int                  `json:"priority"`
	Reason              string               `json:"reason"`
}

// Progress is the per-student, per-course ledger. One row per pair.
// swagger:model Progress
type Progress struct {
	ID                   uint                                `gorm:"primaryKey" json:"id"`
	StudentID            uint                                `gorm:"not null;uniqueIndex:idx_progress_student_course" json:"student"`
	CourseID             uint                                `gorm:"not null;uniqueIndex:idx_progress_student_course;index" json:"course"`
	CompletedLessons     datatypes.JSONSlice[string]         `json:"completedLessons"`
	CompletedAssignments datatypes.JSONSlice[uint]           `json:"completedAssignments"`
	CompletedQuizzes     []CompletedQuiz                     `gorm:"foreignKey:ProgressID" json:"completedQuizzes"`
	ModuleProgress       datatypes.JSONSlice[ModuleProgress] `json:"moduleProgress"`
	ConceptMastery       datatypes.JSONSlice[ConceptMastery] `json:"conceptMastery"`
	PersonalizedRoadmap  datatypes.JSONSlice[RoadmapEntry]   `json:"personalizedRoadmap"`
	OverallProgress      float64                             `gorm:"default:0" json:"overallProgress"`
	LastActive           time.Time                           `json:"lastActive"`
	Streak               int                                 `gorm:"default:0" json:"streak"`
	CreatedAt            time.Time                           `json:"createdAt"`
	UpdatedAt            time.Time                           `json:"updatedAt"`
}

func (Progress) TableName() string {
	return "progress"
}

// CompletedQuiz links an evaluation into a progress ledger at most once.
type CompletedQuiz struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	ProgressID   uint      `gorm:"not null;uniqueIndex:idx_progress_evaluation" json:"-"`
	EvaluationID uint      `gorm:"not null;uniqueIndex:idx_progress_evaluation" json:"quizId"`
	Score        float64   `json:"score"`
	CreatedAt    time.Time `json:"completedAt"`
}

func (CompletedQuiz) TableName() string {
	return "progress_completed_quizzes"
}

// NewProgress returns an empty ledger with every list initialized.
func NewProgress(studentID, courseID uint) Progress {
	return Progress{
		StudentID:            studentID,
		CourseID:             courseID,
		CompletedLessons:     datatypes.JSONSlice[string]{},
		CompletedAssignments: datatypes.JSONSlice[uint]{},
		ModuleProgress:       datatypes.JSONSlice[ModuleProgress]{},
		ConceptMastery:       datatypes.JSONSlice[ConceptMastery]{},
		PersonalizedRoadmap:  datatypes.JSONSlice[RoadmapEntry]{},
		LastActive:           time.Now(),
	}
}
