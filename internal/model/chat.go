package model

// ChatMessage is one question/answer pair of the assistant transcript.
type ChatMessage struct {
	UUIDBase
	UserID   uint   `gorm:"index;not null" json:"userId"`
	Question string `gorm:"type:text;not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
