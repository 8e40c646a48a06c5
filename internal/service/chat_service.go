package service

import (
	"strings"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"
)

type ChatService struct {
	ChatRepo *repository.ChatRepository
	UserRepo *repository.UserRepository
}

func NewChatService(chatRepo *repository.ChatRepository, userRepo *repository.UserRepository) *ChatService {
	return &ChatService{ChatRepo: chatRepo, UserRepo: userRepo}
}

func (s *ChatService) AddMessage(userID uint, question, answer string) (*model.ChatMessage, error) {
	if userID == 0 || strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return nil, util.NewValidation("User ID, question and answer are required")
	}
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}

	msg := &model.ChatMessage{UserID: userID, Question: question, Answer: answer}
	if err := s.ChatRepo.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Messages never returns nil, so an empty history encodes as [].
func (s *ChatService) Messages(userID uint) ([]model.ChatMessage, error) {
	msgs, err := s.ChatRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	return msgs, nil
}

func (s *ChatService) DeleteMessages(userID uint) (int64, error) {
	return s.ChatRepo.DeleteByUser(userID)
}
