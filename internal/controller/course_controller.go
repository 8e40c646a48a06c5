package controller

import (
	"encoding/json"
	"strconv"
	"strings"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// parseTags accepts a JSON array or a comma-separated list.
func parseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var tags []string
	if strings.HasPrefix(raw, "[") && json.Unmarshal([]byte(raw), &tags) == nil {
		return tags
	}
	return strings.Split(raw, ",")
}

// CreateCourse godoc
// @Summary Create a course
// @Description Multipart create with an optional png/jpg/jpeg image. Teachers create courses they instruct
// @Tags teacher-course
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   name formData string true "Course name"
// @Param   description formData string true "Course description"
// @Param   instructor formData int false "Instructor ID, defaults to the caller"
// @Param   tags formData string false "JSON array or comma-separated tags"
// @Param   price formData number false "Price"
// @Param   duration formData string false "Duration label"
// @Param   difficulty formData int false "Difficulty"
// @Param   image formData file false "Course image"
// @Success 201 {object} util.Response "Course created successfully"
// @Failure 400 {object} util.Response "Validation error"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/v1/user/teacher/course/ [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	instructorID := claims.UserID
	if raw := strings.TrimSpace(ctx.PostForm("instructor")); raw != "" {
		id, err := util.ParseID(raw, "instructor")
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		instructorID = id
	}
	if claims.Role != model.Admin && instructorID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	in := service.CreateCourseInput{
		Name:         ctx.PostForm("name"),
		Description:  ctx.PostForm("description"),
		InstructorID: instructorID,
		Tags:         parseTags(ctx.PostForm("tags")),
		Duration:     ctx.PostForm("duration"),
	}
	if raw := ctx.PostForm("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			util.BadRequest(ctx, "Invalid price")
			return
		}
		in.Price = price
	}
	if raw := ctx.PostForm("difficulty"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "Invalid difficulty")
			return
		}
		in.Difficulty = d
	}
	if fh, err := ctx.FormFile("image"); err == nil {
		in.Image = fh
	}

	course, err := c.CourseService.Create(ctx.Request.Context(), in)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, "Course created successfully", gin.H{"course": course})
}

// GetCourse godoc
// @Summary Get a course
// @Tags student-course
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response "Course found"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/v1/user/student/course/get-course/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"), "course id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	course, err := c.CourseService.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Course found", gin.H{"course": course})
}

// ListCourses godoc
// @Summary List every course
// @Tags student-course
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "Found all courses"
// @Router /api/v1/user/student/course/ [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Found all courses", gin.H{"courses": courses})
}

// ListCoursesByInstructor godoc
// @Summary List an instructor's courses
// @Tags teacher-course
// @Produce  json
// @Security ApiKeyAuth
// @Param   instructorid header int true "Instructor ID"
// @Success 200 {object} util.Response "Found all courses"
// @Failure 400 {object} util.Response "Invalid instructor id"
// @Router /api/v1/user/teacher/course/ [get]
func (c *CourseController) ListCoursesByInstructor(ctx *gin.Context) {
	id, err := util.ParseID(ctx.GetHeader("instructorid"), "instructor id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	courses, err := c.CourseService.ListByInstructor(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Found all courses", gin.H{"courses": courses})
}

// ListCoursesByStudent godoc
// @Summary List a student's enrolled courses
// @Tags student-course
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path int true "Student ID"
// @Success 200 {object} util.Response "Courses retrieved successfully"
// @Failure 404 {object} util.Response "User not found"
// @Router /api/v1/user/student/course/{studentId} [get]
func (c *CourseController) ListCoursesByStudent(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("studentId"), "student id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if !authorizeSelf(ctx, id) {
		return
	}

	courses, err := c.CourseService.ListByStudent(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Courses retrieved successfully", gin.H{"courses": courses})
}

// GenerateModules godoc
// @Summary Generate the course's modules
// @Description Replaces the modules with a plan generated from the course description
// @Tags teacher-course
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response "Created roadmap successfully"
// @Failure 404 {object} util.Response "Course not found"
// @Failure 500 {object} util.Response "External service unavailable"
// @Router /api/v1/user/teacher/course/roadmap/{id} [get]
func (c *CourseController) GenerateModules(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"), "course id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	course, err := c.CourseService.GenerateModules(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Created roadmap successfully", gin.H{
		"modules": course.ModuleList(),
		"course":  course,
	})
}

// UploadModuleContent godoc
// @Summary Upload a module video
// @Description Stores an mp4/webm/ogg video and appends it to the module selected by the roadmapid header
// @Tags teacher-course
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   roadmapid header int true "Module index"
// @Param   content formData file true "Video file"
// @Param   title formData string false "Content title"
// @Success 200 {object} util.Response "Video link added successfully"
// @Failure 400 {object} util.Response "Validation error"
// @Failure 404 {object} util.Response "Course or module not found"
// @Router /api/v1/user/teacher/course/roadmap/{id}/content [post]
func (c *CourseController) UploadModuleContent(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"), "course id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	moduleIdx, err := util.ParseIndex(ctx.GetHeader("roadmapid"), "module index")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	fh, err := ctx.FormFile("content")
	if err != nil {
		util.BadRequest(ctx, "Please provide a video file in the 'content' field")
		return
	}

	content, err := c.CourseService.UploadModuleContent(ctx.Request.Context(), id, moduleIdx, ctx.PostForm("title"), fh)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Video link added successfully", gin.H{
		"url":     content.Resource.URL,
		"content": content,
	})
}
