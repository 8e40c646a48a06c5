package controller

import (
	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// swagger:model ChatMessageRequest
type ChatMessageRequest struct {
	UserID   util.FlexID `json:"userId" swaggertype:"integer"`
	Question string      `json:"question"`
	Answer   string      `json:"answer"`
}

// AddMessage godoc
// @Summary Store a chat exchange
// @Tags chat
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ChatMessageRequest true "Message"
// @Success 201 {object} util.Response "Message added"
// @Failure 400 {object} util.Response "Validation error"
// @Failure 404 {object} util.Response "User not found"
// @Router /api/v1/user/chat/message/add [post]
func (c *ChatController) AddMessage(ctx *gin.Context) {
	var req ChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid message")
		return
	}
	if !authorizeOwner(ctx, req.UserID.Uint()) {
		return
	}

	msg, err := c.ChatService.AddMessage(req.UserID.Uint(), req.Question, req.Answer)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Message added", gin.H{"addedMessage": msg})
}

func headerUserID(ctx *gin.Context) (uint, bool) {
	id, err := util.ParseID(ctx.GetHeader("userid"), "user id")
	if err != nil {
		util.HandleError(ctx, err)
		return 0, false
	}
	return id, authorizeOwner(ctx, id)
}

// GetMessages godoc
// @Summary Chat history
// @Description Oldest first
// @Tags chat
// @Produce  json
// @Security ApiKeyAuth
// @Param   userid header int true "User ID"
// @Success 200 {object} util.Response "messages"
// @Router /api/v1/user/chat/message/get [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	userID, ok := headerUserID(ctx)
	if !ok {
		return
	}

	messages, err := c.ChatService.Messages(userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"messages": messages})
}

// DeleteMessages godoc
// @Summary Clear chat history
// @Tags chat
// @Produce  json
// @Security ApiKeyAuth
// @Param   userid header int true "User ID"
// @Success 200 {object} util.Response "Chat history cleared"
// @Router /api/v1/user/chat/message/delete [delete]
func (c *ChatController) DeleteMessages(ctx *gin.Context) {
	userID, ok := headerUserID(ctx)
	if !ok {
		return
	}

	deleted, err := c.ChatService.DeleteMessages(userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Chat history cleared", gin.H{"deleted": deleted})
}
