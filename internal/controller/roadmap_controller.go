package controller

import (
	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoadmapController struct {
	RoadmapService *service.RoadmapService
}

func NewRoadmapController(roadmapService *service.RoadmapService) *RoadmapController {
	return &RoadmapController{RoadmapService: roadmapService}
}

// BuildRoadmap godoc
// @Summary Personalized roadmap
// @Description Suggestions per module from the student's average quiz performance
// @Tags user
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Param   studentId path int true "Student ID"
// @Success 200 {object} util.Response{roadmap=service.Roadmap} "roadmap"
// @Failure 400 {object} util.Response "Not enough quiz data to build a roadmap"
// @Failure 404 {object} util.Response "Student or course not found"
// @Failure 500 {object} util.Response "External service unavailable"
// @Router /api/v1/user/roadmap/{courseId}/{studentId} [get]
func (c *RoadmapController) BuildRoadmap(ctx *gin.Context) {
	courseID, err := util.ParseID(ctx.Param("courseId"), "course id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	studentID, err := util.ParseID(ctx.Param("studentId"), "student id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if !authorizeSelf(ctx, studentID) {
		return
	}

	roadmap, err := c.RoadmapService.BuildRoadmap(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"roadmap": roadmap})
}
