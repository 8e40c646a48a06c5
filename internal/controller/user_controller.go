package controller

import (
	"encoding/json"
	"strings"

	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"
	"eduverse_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// UpdateProfile godoc
// @Summary Update a profile
// @Description Multipart edit of the profile. interests is a JSON array string; image is png/jpg/jpeg
// @Tags user
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "User ID"
// @Param   name formData string true "Display name"
// @Param   email formData string true "Email"
// @Param   username formData string true "Username"
// @Param   about formData string false "About"
// @Param   interests formData string false "JSON array of interest tags"
// @Param   image formData file false "Profile image"
// @Success 200 {object} util.Response "Profile updated successfully"
// @Failure 400 {object} util.Response "Validation error"
// @Failure 404 {object} util.Response "User not found"
// @Router /api/v1/user/update/{id} [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"), "user id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if !authorizeOwner(ctx, id) {
		return
	}

	in := service.ProfileUpdate{
		Name:     ctx.PostForm("name"),
		Email:    ctx.PostForm("email"),
		Username: ctx.PostForm("username"),
		About:    ctx.PostForm("about"),
	}
	if raw := strings.TrimSpace(ctx.PostForm("interests")); raw != "" {
		var interests []string
		if err := json.Unmarshal([]byte(raw), &interests); err != nil {
			logger.Log.Warn("Ignoring malformed interests", zap.Uint("user_id", id), zap.Error(err))
		} else {
			in.Interests = interests
		}
	}
	if fh, err := ctx.FormFile("image"); err == nil {
		in.Image = fh
	}

	user, err := c.UserService.UpdateProfile(ctx.Request.Context(), id, in)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.SuccessMessage(ctx, "Profile updated successfully", gin.H{"user": user})
}

// GetUserByEmail godoc
// @Summary Look up a user by email
// @Tags user
// @Produce  json
// @Security ApiKeyAuth
// @Param   email query string true "Email"
// @Success 200 {object} util.Response "user"
// @Failure 404 {object} util.Response "User not found"
// @Router /api/v1/user/get [get]
func (c *UserController) GetUserByEmail(ctx *gin.Context) {
	user, err := c.UserService.GetByEmail(ctx.Query("email"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"user": user})
}
