package repository

import (
	"eduverse_backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) Create(msg *model.ChatMessage) error {
	return r.DB.Create(msg).Error
}

// ListByUser returns the transcript oldest first.
func (r *ChatRepository) ListByUser(userID uint) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *ChatRepository) DeleteByUser(userID uint) (int64, error) {
	res := r.DB.Unscoped().Where("user_id = ?", userID).Delete(&model.ChatMessage{})
	return res.RowsAffected, res.Error
}
