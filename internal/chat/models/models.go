package models

import (
	"time"
)

// ChatMessage - одна реплика диалога. Сообщения пользователя всегда
// несут метку эмоции, сообщения ассистента - никогда. Обратная связь
// (feedback) применима только к сообщениям ассистента.
type ChatMessage struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	IsUser    bool      `db:"is_user" json:"is_user"`
	Emotion   *string   `db:"emotion" json:"emotion,omitempty"`
	Feedback  *bool     `db:"feedback" json:"feedback,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
