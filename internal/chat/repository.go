package chat

import (
	"context"
	"database/sql"
	"fmt"
	"mindwell/internal/chat/models"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) StoreUserMessage(ctx context.Context, userID int64, content string, emotionLabel string) (int64, error) {
	query := `
		INSERT INTO chat_messages (user_id, content, is_user, emotion, created_at)
		VALUES ($1, $2, TRUE, $3, NOW())
		RETURNING id
	`

	var messageID int64
	err := r.db.GetContext(ctx, &messageID, query, userID, content, emotionLabel)
	if err != nil {
		return 0, fmt.Errorf("не удалось сохранить сообщение пользователя: %w", err)
	}

	return messageID, nil
}

func (r *Repository) StoreAssistantMessage(ctx context.Context, userID int64, content string) (int64, error) {
	query := `
		INSERT INTO chat_messages (user_id, content, is_user, emotion, created_at)
		VALUES ($1, $2, FALSE, NULL, NOW())
		RETURNING id
	`

	var messageID int64
	err := r.db.GetContext(ctx, &messageID, query, userID, content)
	if err != nil {
		return 0, fmt.Errorf("не удалось сохранить ответ ассистента: %w", err)
	}

	return messageID, nil
}

func (r *Repository) GetMessageByID(ctx context.Context, messageID int64) (*models.ChatMessage, error) {
	query := `
		SELECT id, user_id, content, is_user, emotion, feedback, created_at
		FROM chat_messages
		WHERE id = $1
	`

	var message models.ChatMessage
	err := r.db.GetContext(ctx, &message, query, messageID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("не удалось получить сообщение %d: %w", messageID, err)
	}
	return &message, nil
}

func (r *Repository) SetFeedback(ctx context.Context, messageID int64, positive bool) error {
	query := `
		UPDATE chat_messages
		SET feedback = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, messageID, positive)
	if err != nil {
		return fmt.Errorf("не удалось сохранить оценку сообщения %d: %w", messageID, err)
	}

	return nil
}

func (r *Repository) ListMessages(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	query := `
		SELECT id, user_id, content, is_user, emotion, feedback, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	var messages []models.ChatMessage
	err := r.db.SelectContext(ctx, &messages, query, userID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить историю сообщений: %w", err)
	}

	return messages, nil
}
