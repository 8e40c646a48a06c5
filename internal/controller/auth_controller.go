package controller

import (
	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// SignupRequest defines model for registration
// swagger:model SignupRequest
type SignupRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role" example:"Student"`
}

// Signup godoc
// @Summary Register a new account
// @Description Creates a student or teacher account
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body SignupRequest true "Account details"
// @Success 201 {object} util.Response "Sign Up Successful"
// @Failure 400 {object} util.Response "Missing field, email or username already in use"
// @Failure 500 {object} util.Response "Internal server error"
// @Router /api/v1/user/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please enter all credentials")
		return
	}

	user, err := c.AuthService.Signup(service.SignupInput{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, "Sign Up Successful", gin.H{"user": user})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response "token and user"
// @Failure 400 {object} util.Response "Invalid email or password"
// @Router /api/v1/user/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please enter all credentials")
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.SuccessMessage(ctx, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
