package controller

import (
	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func courseAndModule(ctx *gin.Context) (uint, int, bool) {
	id, err := util.ParseID(ctx.Param("id"), "course id")
	if err != nil {
		util.HandleError(ctx, err)
		return 0, 0, false
	}
	idx, err := util.ParseIndex(ctx.Param("moduleIndex"), "module index")
	if err != nil {
		util.HandleError(ctx, err)
		return 0, 0, false
	}
	return id, idx, true
}

// GenerateQuiz godoc
// @Summary Generate a module quiz
// @Description Generates questions from the module description and replaces the module's quiz
// @Tags teacher-course
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   moduleIndex path int true "Module index"
// @Success 200 {object} util.Response "Generated quiz"
// @Failure 404 {object} util.Response "Course or module not found"
// @Failure 500 {object} util.Response "External service unavailable"
// @Router /api/v1/user/teacher/course/get-course/{id}/{moduleIndex} [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	id, idx, ok := courseAndModule(ctx)
	if !ok {
		return
	}

	quiz, err := c.QuizService.GenerateQuiz(ctx.Request.Context(), id, idx)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Generated quiz", gin.H{"quiz": quiz})
}

// GetQuiz godoc
// @Summary Get a module quiz
// @Tags teacher-course
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   moduleIndex path int true "Module index"
// @Success 200 {object} util.Response "Quiz found, with state not_generated or generated"
// @Failure 404 {object} util.Response "Course or module not found"
// @Router /api/v1/user/teacher/course/get-course/{id}/{moduleIndex} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id, idx, ok := courseAndModule(ctx)
	if !ok {
		return
	}

	quiz, state, err := c.QuizService.GetQuiz(id, idx)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Quiz found", gin.H{"quiz": quiz, "state": state})
}

// swagger:model EvaluationRequest
type EvaluationRequest struct {
	Course    util.FlexID                `json:"course" swaggertype:"integer"`
	Student   util.FlexID                `json:"student" swaggertype:"integer"`
	Module    int                        `json:"module"`
	Marks     *float64                   `json:"marks"`
	Questions []service.AnsweredQuestion `json:"questions"`
}

// SubmitEvaluation godoc
// @Summary Submit a quiz attempt
// @Description Grades the attempt, stores an Evaluation with per-question feedback and updates the student's progress
// @Tags student-course
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EvaluationRequest true "Attempt"
// @Success 201 {object} util.Response "Quiz evaluated successfully"
// @Failure 400 {object} util.Response "Validation error"
// @Failure 404 {object} util.Response "Course, module or enrollment not found"
// @Failure 500 {object} util.Response "External service unavailable"
// @Router /api/v1/user/student/course/quiz [post]
func (c *QuizController) SubmitEvaluation(ctx *gin.Context) {
	var req EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid quiz submission")
		return
	}
	if req.Course == 0 || req.Student == 0 {
		util.BadRequest(ctx, "Course and student are required")
		return
	}
	if req.Module < 0 {
		util.BadRequest(ctx, "Invalid module index")
		return
	}
	if !authorizeSelf(ctx, req.Student.Uint()) {
		return
	}

	result, err := c.QuizService.SubmitEvaluation(ctx.Request.Context(), service.SubmitEvaluationInput{
		CourseID:    req.Course.Uint(),
		StudentID:   req.Student.Uint(),
		ModuleIndex: req.Module,
		Marks:       req.Marks,
		Questions:   req.Questions,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, "Quiz evaluated successfully", gin.H{
		"evaluation": result.Evaluation,
		"score":      result.Score,
		"passed":     result.Passed,
	})
}
