package controller

import (
	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// Leaderboard godoc
// @Summary Course leaderboard
// @Description Total graded assignment marks per enrolled student, in enrollment order
// @Tags user
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{leaderboard=[]service.LeaderboardEntry} "Leaderboard generated"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/v1/user/course/{id} [get]
func (c *LeaderboardController) Leaderboard(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"), "course id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	board, err := c.LeaderboardService.Leaderboard(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Leaderboard generated", gin.H{"leaderboard": board})
}
