package controller

import (
	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController exposes read-only listings for administrators.
type AdminController struct {
	UserService       *service.UserService
	CourseService     *service.CourseService
	AssignmentService *service.AssignmentService
}

func NewAdminController(
	userService *service.UserService,
	courseService *service.CourseService,
	assignmentService *service.AssignmentService,
) *AdminController {
	return &AdminController{
		UserService:       userService,
		CourseService:     courseService,
		AssignmentService: assignmentService,
	}
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "users"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/v1/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"users": users})
}

// ListCourses godoc
// @Summary List all courses
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "courses"
// @Router /api/v1/admin/courses [get]
func (c *AdminController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courses": courses})
}

// ListAssignments godoc
// @Summary List all assignments
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "assignments"
// @Router /api/v1/admin/assignments [get]
func (c *AdminController) ListAssignments(ctx *gin.Context) {
	assignments, err := c.AssignmentService.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assignments": assignments})
}
