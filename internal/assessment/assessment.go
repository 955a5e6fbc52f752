package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

var ErrInvalidAnswers = errors.New("анкета должна содержать ответы q1-q7 со значениями от 1 до 5")

// Анкета MHQoL-7D: семь вопросов, каждый оценивается от 1 до 5.
const (
	questionCount = 7
	maxRawScore   = questionCount * 5
)

type Service struct {
	db *sqlx.DB
}

type Assessment struct {
	ID        string         `db:"id" json:"id"`
	UserID    int64          `db:"user_id" json:"user_id"`
	Score     float64        `db:"score" json:"score"`
	Answers   types.JSONText `db:"answers" json:"-"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// GetAnswers декодирует сохранённый набор ответов.
func (a *Assessment) GetAnswers() (map[string]int, error) {
	answers := make(map[string]int)
	if err := json.Unmarshal(a.Answers, &answers); err != nil {
		return nil, fmt.Errorf("ошибка декодирования ответов анкеты %s: %w", a.ID, err)
	}
	return answers, nil
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		db: db,
	}
}

// Submit сохраняет заполненную анкету и возвращает её с
// нормализованным баллом по шкале 0-100.
func (s *Service) Submit(ctx context.Context, userID int64, answers map[string]int) (*Assessment, error) {
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования ответов анкеты: %w", err)
	}

	assessment := &Assessment{
		ID:      uuid.New().String(),
		UserID:  userID,
		Score:   scoreAnswers(answers),
		Answers: types.JSONText(encoded),
	}

	query := `
		INSERT INTO assessments (id, user_id, score, answers, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	err = s.db.GetContext(ctx, &assessment.CreatedAt, query, assessment.ID, userID, assessment.Score, assessment.Answers)
	if err != nil {
		return nil, fmt.Errorf("ошибка при сохранении анкеты: %w", err)
	}

	return assessment, nil
}

func (s *Service) History(ctx context.Context, userID int64) ([]Assessment, error) {
	query := `
		SELECT id, user_id, score, answers, created_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var assessments []Assessment
	err := s.db.SelectContext(ctx, &assessments, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении истории анкет: %w", err)
	}

	return assessments, nil
}

func (s *Service) AverageScore(ctx context.Context, userID int64) (float64, error) {
	query := `
		SELECT COALESCE(AVG(score), 0)
		FROM assessments
		WHERE user_id = $1
	`

	var average float64
	err := s.db.GetContext(ctx, &average, query, userID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при вычислении среднего балла: %w", err)
	}

	return average, nil
}

func validateAnswers(answers map[string]int) error {
	if len(answers) != questionCount {
		return ErrInvalidAnswers
	}
	for i := 1; i <= questionCount; i++ {
		value, ok := answers[fmt.Sprintf("q%d", i)]
		if !ok || value < 1 || value > 5 {
			return ErrInvalidAnswers
		}
	}
	return nil
}

func scoreAnswers(answers map[string]int) float64 {
	raw := 0
	for _, value := range answers {
		raw += value
	}
	return float64(raw) / maxRawScore * 100
}
