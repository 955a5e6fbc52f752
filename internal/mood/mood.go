package mood

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrInvalidIntensity = errors.New("интенсивность должна быть в диапазоне от 0 до 1")

type Service struct {
	db *sqlx.DB
}

// Record - одна запись эмоционального состояния. Записи только
// добавляются, обычный поток их не изменяет и не удаляет.
type Record struct {
	ID        string    `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Emotion   string    `db:"emotion" json:"emotion"`
	Intensity float64   `db:"intensity" json:"intensity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) RecordEmotion(ctx context.Context, userID int64, emotionLabel string, intensity float64) (string, error) {
	if emotionLabel == "" {
		return "", fmt.Errorf("эмоция обязательна")
	}
	if intensity < 0 || intensity > 1 {
		return "", ErrInvalidIntensity
	}

	recordID := uuid.New().String()

	query := `
		INSERT INTO emotion_records (id, user_id, emotion, intensity, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, recordID, userID, emotionLabel, intensity)
	if err != nil {
		return "", fmt.Errorf("ошибка при сохранении записи эмоции: %w", err)
	}

	return recordID, nil
}

// GetMoodHistory возвращает последние записи эмоций пользователя,
// новые первыми, не более limit штук.
func (s *Service) GetMoodHistory(ctx context.Context, userID int64, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
		SELECT id, user_id, emotion, intensity, created_at
		FROM emotion_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var records []Record
	err := s.db.SelectContext(ctx, &records, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении истории настроения: %w", err)
	}

	return records, nil
}

// GetMoodSummary группирует суммарную интенсивность по дням и эмоциям
// для графиков на дашборде.
func (s *Service) GetMoodSummary(ctx context.Context, userID int64, limit int) (map[string]map[string]float64, error) {
	records, err := s.GetMoodHistory(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	return summarize(records), nil
}

func summarize(records []Record) map[string]map[string]float64 {
	summary := make(map[string]map[string]float64)
	for _, record := range records {
		day := record.CreatedAt.Format("2006-01-02")
		if summary[day] == nil {
			summary[day] = make(map[string]float64)
		}
		summary[day][record.Emotion] += record.Intensity
	}
	return summary
}
