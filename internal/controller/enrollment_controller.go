package controller

import (
	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// swagger:model EnrollmentRequest
type EnrollmentRequest struct {
	CourseID util.FlexID `json:"courseId" swaggertype:"integer"`
}

func (c *EnrollmentController) bind(ctx *gin.Context) (uint, uint, bool) {
	studentID, err := util.ParseID(ctx.Param("studentId"), "student id")
	if err != nil {
		util.HandleError(ctx, err)
		return 0, 0, false
	}
	var req EnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Course ID is required")
		return 0, 0, false
	}
	if !authorizeSelf(ctx, studentID) {
		return 0, 0, false
	}
	return studentID, req.CourseID.Uint(), true
}

// Enroll godoc
// @Summary Enroll a student in a course
// @Tags student-course
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path int true "Student ID"
// @Param   body body EnrollmentRequest true "Course"
// @Success 201 {object} util.Response "Student enrolled"
// @Failure 400 {object} util.Response "Already enrolled"
// @Failure 404 {object} util.Response "Student or course not found"
// @Router /api/v1/user/student/course/{studentId} [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	studentID, courseID, ok := c.bind(ctx)
	if !ok {
		return
	}

	course, err := c.EnrollmentService.Enroll(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Student enrolled", gin.H{"course": course})
}

// Unenroll godoc
// @Summary Unenroll a student from a course
// @Tags student-course
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path int true "Student ID"
// @Param   body body EnrollmentRequest true "Course"
// @Success 200 {object} util.Response "Student unenrolled successfully"
// @Failure 404 {object} util.Response "Not enrolled"
// @Router /api/v1/user/student/course/{studentId} [delete]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	studentID, courseID, ok := c.bind(ctx)
	if !ok {
		return
	}

	course, err := c.EnrollmentService.Unenroll(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Student unenrolled successfully", gin.H{"course": course})
}
