package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"
	"eduverse_backend/pkg/logger"

	"go.uber.org/zap"
)

type QuizService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	EvaluationRepo *repository.EvaluationRepository
	Inference      *InferenceService
}

func NewQuizService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	evaluationRepo *repository.EvaluationRepository,
	inference *InferenceService,
) *QuizService {
	return &QuizService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		EvaluationRepo: evaluationRepo,
		Inference:      inference,
	}
}

func (s *QuizService) loadModule(courseID uint, moduleIdx int) (*model.Course, model.Module, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, model.Module{}, notFound(err, util.ErrCourseNotFound)
	}
	module, ok := course.Module(moduleIdx)
	if !ok {
		return nil, model.Module{}, util.ErrModuleNotFound
	}
	return course, module, nil
}

// GenerateQuiz fills the module's quiz from its description. Calling it again
// replaces the questions.
func (s *QuizService) GenerateQuiz(ctx context.Context, courseID uint, moduleIdx int) (*model.Quiz, error) {
	course, module, err := s.loadModule(courseID, moduleIdx)
	if err != nil {
		return nil, err
	}

	description := module.Description
	if strings.TrimSpace(description) == "" {
		description = module.Title
	}

	questions, err := s.Inference.GenerateQuiz(ctx, description)
	if err != nil {
		return nil, err
	}

	quiz := normalizeQuiz(questions, module.Quiz.PassingScore)
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz generation returned no usable questions", util.ErrDependencyUnavailable)
	}
	if dropped := len(questions) - len(quiz.Questions); dropped > 0 {
		logger.Log.Warn("Dropped invalid generated questions",
			zap.Uint("course_id", courseID),
			zap.Int("module", moduleIdx),
			zap.Int("dropped", dropped),
		)
	}

	module.Quiz = quiz
	modules := course.ModuleList()
	modules[moduleIdx] = module
	course.SetModules(modules)
	if err := s.CourseRepo.UpdateModules(course); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) GetQuiz(courseID uint, moduleIdx int) (*model.Quiz, model.QuizState, error) {
	_, module, err := s.loadModule(courseID, moduleIdx)
	if err != nil {
		return nil, "", err
	}
	quiz := module.Quiz
	if quiz.Questions == nil {
		quiz.Questions = []model.Question{}
	}
	if quiz.PassingScore <= 0 {
		quiz.PassingScore = model.DefaultPassingScore
	}
	return &quiz, module.QuizState(), nil
}

type SubmitEvaluationInput struct {
	CourseID    uint
	StudentID   uint
	ModuleIndex int
	// Marks is the client's own tally. When nil the marks are computed from
	// the selected options.
	Marks     *float64
	Questions []AnsweredQuestion
}

type EvaluationResult struct {
	Evaluation *model.Evaluation `json:"evaluation"`
	Score      float64           `json:"score"`
	Passed     bool              `json:"passed"`
}

// gradeAnswers checks each answer against the stored quiz. Answers beyond
// the stored questions have no key and count as wrong.
func gradeAnswers(quiz model.Quiz, questions []AnsweredQuestion) ([]model.AnswerRecord, int) {
	records := make([]model.AnswerRecord, 0, len(questions))
	correct := 0
	for i, q := range questions {
		key := ""
		tags := q.ConceptTags
		if i < len(quiz.Questions) {
			key = quiz.Questions[i].Answer
			tags = quiz.Questions[i].ConceptTags
		}
		if tags == nil {
			tags = []string{}
		}
		selected := strings.ToLower(strings.TrimSpace(q.SelectedOption))
		ok := key != "" && selected == key
		if ok {
			correct++
		}
		records = append(records, model.AnswerRecord{
			QuestionIndex:  i,
			SelectedOption: selected,
			Correct:        ok,
			ConceptTags:    tags,
		})
	}
	return records, correct
}

// SubmitEvaluation grades one attempt, stores the Evaluation and folds it
// into the student's Progress. Every call creates a new Evaluation.
func (s *QuizService) SubmitEvaluation(ctx context.Context, in SubmitEvaluationInput) (*EvaluationResult, error) {
	if len(in.Questions) == 0 {
		return nil, util.NewValidation("Please answer at least one question")
	}

	course, module, err := s.loadModule(in.CourseID, in.ModuleIndex)
	if err != nil {
		return nil, err
	}
	if module.QuizState() == model.QuizNotGenerated {
		return nil, util.ErrQuizNotGenerated
	}

	enrolled, err := s.EnrollmentRepo.Exists(in.StudentID, in.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}
	progress, err := s.ProgressRepo.FindByStudentAndCourse(in.StudentID, in.CourseID)
	if err != nil {
		return nil, notFound(err, util.ErrNotEnrolled)
	}

	answers, correct := gradeAnswers(module.Quiz, in.Questions)
	n := len(in.Questions)
	marks := float64(MarksPerQuestion * correct)
	if in.Marks != nil {
		marks = *in.Marks
		if marks < 0 || marks > float64(MarksPerQuestion*n) {
			return nil, util.NewValidation(fmt.Sprintf("Marks must be between 0 and %d", MarksPerQuestion*n))
		}
	}

	feedback, err := s.Inference.QuizFeedback(ctx, in.Questions)
	if err != nil {
		return nil, err
	}

	evaluation := &model.Evaluation{
		CourseID:      in.CourseID,
		StudentID:     in.StudentID,
		ModuleIndex:   in.ModuleIndex,
		Marks:         marks,
		QuestionCount: n,
		Feedback:      feedback,
	}
	if err := s.EvaluationRepo.Create(evaluation); err != nil {
		return nil, err
	}

	score := QuizScore(marks, n)
	passed := QuizPassed(marks, n, module.Quiz.PassingScore)

	if _, err := s.ProgressRepo.AddCompletedQuiz(progress.ID, evaluation.ID, score); err != nil {
		return nil, err
	}

	ApplyQuizAttempt(progress, in.ModuleIndex, len(course.ModuleList()), model.QuizAttempt{
		EvaluationID: evaluation.ID,
		Date:         time.Now(),
		Score:        score,
		Answers:      answers,
	}, passed)
	if err := s.ProgressRepo.Save(progress); err != nil {
		return nil, err
	}

	return &EvaluationResult{Evaluation: evaluation, Score: score, Passed: passed}, nil
}
