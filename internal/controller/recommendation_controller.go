package controller

import (
	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// swagger:model RecommendationRequest
type RecommendationRequest struct {
	UserID util.FlexID `json:"userId" swaggertype:"integer"`
}

// Recommend godoc
// @Summary Recommend courses
// @Description Ranks the catalog against the user's interests
// @Tags student-course
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RecommendationRequest true "User"
// @Success 200 {object} util.Response "courses"
// @Failure 400 {object} util.Response "User ID is required"
// @Failure 404 {object} util.Response "User not found"
// @Failure 500 {object} util.Response "External service unavailable"
// @Router /api/v1/user/student/course/give/recommendation [post]
func (c *RecommendationController) Recommend(ctx *gin.Context) {
	var req RecommendationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		util.BadRequest(ctx, "User ID is required")
		return
	}
	if !authorizeSelf(ctx, req.UserID.Uint()) {
		return
	}

	courses, err := c.RecommendationService.Recommend(ctx.Request.Context(), req.UserID.Uint())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courses": courses})
}

// SimilarCourses godoc
// @Summary Similar external courses
// @Tags student-course
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{similarCourses=[]service.SimilarCourse} "Similar courses found successfully"
// @Failure 404 {object} util.Response "Course not found"
// @Failure 500 {object} util.Response "External service unavailable"
// @Router /api/v1/user/student/course/similar-courses/{id} [get]
func (c *RecommendationController) SimilarCourses(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"), "course id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	similar, err := c.RecommendationService.SimilarCourses(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Similar courses found successfully", gin.H{"similarCourses": similar})
}
