package model

import (
	"strings"

	"gorm.io/datatypes"
)

type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentNote     ContentType = "note"
	ContentPractice ContentType = "practice"
	ContentText     ContentType = "text"
	ContentOther    ContentType = "other"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentVideo, ContentNote, ContentPractice, ContentText, ContentOther:
		return true
	}
	return false
}

const DefaultPassingScore = 70

type QuizState string

const (
	QuizNotGenerated QuizState = "not_generated"
	QuizGenerated    QuizState = "generated"
)

type ContentResource struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
	PublicID string  `json:"publicId"`
}

type Content struct {
	Type        ContentType     `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Resource    ContentResource `json:"resource"`
	Tags        []string        `json:"tags"`
}

type QuestionOptions struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c,omitempty"`
	D string `json:"d,omitempty"`
}

// Has reports whether key names a populated option.
func (o QuestionOptions) Has(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "a":
		return o.A != ""
	case "b":
		return o.B != ""
	case "c":
		return o.C != ""
	case "d":
		return o.D != ""
	}
	return false
}

type Question struct {
	Question    string          `json:"question"`
	Options     QuestionOptions `json:"options"`
	Answer      string          `json:"answer"`
	ConceptTags []string        `json:"conceptTags"`
	Difficulty  int             `json:"difficulty"`
}

// Normalize lower-cases the answer key, clamps difficulty to 1-5 and reports
// whether the question is usable: a prompt, options a and b, and an answer
// that names a populated option.
func (q *Question) Normalize() bool {
	q.Question = strings.TrimSpace(q.Question)
	q.Answer = strings.ToLower(strings.TrimSpace(q.Answer))
	if q.Difficulty < 1 {
		q.Difficulty = 1
	}
	if q.Difficulty > 5 {
		q.Difficulty = 5
	}
	if q.ConceptTags == nil {
		q.ConceptTags = []string{}
	}
	return q.Question != "" && q.Options.A != "" && q.Options.B != "" && q.Options.Has(q.Answer)
}

type Quiz struct {
	Questions    []Question `json:"questions"`
	PassingScore float64    `json:"passingScore"`
}

type Module struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	Contents    []Content `json:"contents"`
	Quiz        Quiz      `json:"quiz"`
}

func (m Module) QuizState() QuizState {
	if len(m.Quiz.Questions) == 0 {
		return QuizNotGenerated
	}
	return QuizGenerated
}

// swagger:model Course
type Course struct {
	BaseModel
	Name         string                       `gorm:"size:200;not null" json:"name"`
	Description  string                       `gorm:"type:text;not null" json:"description"`
	InstructorID uint                         `gorm:"index;not null" json:"instructorId"`
	Instructor   *User                        `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Image        ImageRef                     `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	Modules      datatypes.JSONType[[]Module] `json:"modules"`
	Tags         datatypes.JSONSlice[string]  `json:"tags"`
	Price        float64                      `gorm:"default:0" json:"price"`
	Duration     string                       `gorm:"size:100" json:"duration"`
	Rating       float64                      `gorm:"default:0" json:"rating"`
	Difficulty   int                          `gorm:"default:0" json:"difficulty"`
	Assignments  []Assignment                 `gorm:"foreignKey:CourseID" json:"-"`

	// projections of course_enrollments and assignments, filled by the repository
	Students      []uint `gorm:"-" json:"students"`
	AssignmentIDs []uint `gorm:"-" json:"assignments"`
}

func (Course) TableName() string {
	return "courses"
}

// ModuleList never returns nil.
func (c *Course) ModuleList() []Module {
	modules := c.Modules.Data()
	if modules == nil {
		return []Module{}
	}
	return modules
}

func (c *Course) SetModules(modules []Module) {
	c.Modules = datatypes.NewJSONType(modules)
}

// Module returns the module at idx, or false when idx is out of range.
func (c *Course) Module(idx int) (Module, bool) {
	modules := c.ModuleList()
	if idx < 0 || idx >= len(modules) {
		return Module{}, false
	}
	return modules[idx], true
}

func (c *Course) ModuleTitles() []string {
	modules := c.ModuleList()
	titles := make([]string, 0, len(modules))
	for _, m := range modules {
		titles = append(titles, m.Title)
	}
	return titles
}
