package controller

import (
	"time"

	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// swagger:model CreateAssignmentRequest
type CreateAssignmentRequest struct {
	CourseID    util.FlexID `json:"courseId" swaggertype:"integer"`
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	DueDate     *time.Time  `json:"dueDate"`
	MaxMarks    float64     `json:"maxMarks"`
}

// CreateAssignment godoc
// @Summary Create an assignment
// @Tags teacher-assignment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateAssignmentRequest true "Assignment"
// @Success 201 {object} util.Response "Assignment created"
// @Failure 400 {object} util.Response "Validation error"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/v1/user/teacher/assignment [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Course and title are required")
		return
	}

	assignment, err := c.AssignmentService.Create(service.CreateAssignmentInput{
		CourseID:    req.CourseID.Uint(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		MaxMarks:    req.MaxMarks,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Assignment created", gin.H{"assignment": assignment})
}

// ListAssignments godoc
// @Summary List the assignments of a course
// @Tags user
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId query int true "Course ID"
// @Success 200 {object} util.Response "assignments"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/v1/user/assignments [get]
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	courseID, err := util.ParseID(ctx.Query("courseId"), "course id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	assignments, err := c.AssignmentService.ListByCourse(courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assignments": assignments})
}

// SubmitAssignment godoc
// @Summary Submit an assignment file
// @Description Replaces any earlier submission by the same student and clears its grade
// @Tags student-assignment
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   assignmentId path int true "Assignment ID"
// @Param   file formData file true "Submission file"
// @Success 201 {object} util.Response "Assignment submitted"
// @Failure 400 {object} util.Response "Validation error"
// @Failure 404 {object} util.Response "Assignment or enrollment not found"
// @Router /api/v1/user/student/assignment/{assignmentId} [post]
func (c *AssignmentController) SubmitAssignment(ctx *gin.Context) {
	assignmentID, err := util.ParseID(ctx.Param("assignmentId"), "assignment id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	fh, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Submission file is required")
		return
	}

	submission, err := c.AssignmentService.Submit(ctx.Request.Context(), assignmentID, claims.UserID, fh)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Assignment submitted", gin.H{"submission": submission})
}

// swagger:model GradeRequest
type GradeRequest struct {
	Grade *float64 `json:"grade" binding:"required"`
}

// GradeSubmission godoc
// @Summary Grade a submission
// @Tags teacher-assignment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   submissionId path int true "Submission ID"
// @Param   body body GradeRequest true "Grade"
// @Success 200 {object} util.Response "Submission graded"
// @Failure 400 {object} util.Response "Grade out of range"
// @Failure 404 {object} util.Response "Submission not found"
// @Router /api/v1/user/teacher/assignment/submission/{submissionId} [patch]
func (c *AssignmentController) GradeSubmission(ctx *gin.Context) {
	submissionID, err := util.ParseID(ctx.Param("submissionId"), "submission id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Grade is required")
		return
	}

	submission, err := c.AssignmentService.Grade(ctx.Request.Context(), submissionID, *req.Grade)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Submission graded", gin.H{"submission": submission})
}
