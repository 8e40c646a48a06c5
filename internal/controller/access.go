package controller

import (
	"eduverse_backend/internal/model"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// authorizeSelf lets students act only on their own id. Teachers and admins
// may act on any student. It writes the 401/403 response itself.
func authorizeSelf(ctx *gin.Context, userID uint) bool {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return false
	}
	if claims.Role == model.Student && claims.UserID != userID {
		util.Forbidden(ctx)
		return false
	}
	return true
}

// authorizeOwner restricts an action to the account itself or an admin.
func authorizeOwner(ctx *gin.Context, userID uint) bool {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return false
	}
	if claims.Role != model.Admin && claims.UserID != userID {
		util.Forbidden(ctx)
		return false
	}
	return true
}
