package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mindwell/internal/assistant"
	"mindwell/internal/chat/models"
	"mindwell/internal/crisis"
	"mindwell/internal/emotion"
	"mindwell/internal/therapy"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyMessage    = errors.New("сообщение не может быть пустым")
	ErrMessageNotFound = errors.New("сообщение не найдено или недоступно для оценки")
)

// Интенсивность эмоции за один ход фиксирована: классификатор
// не выдаёт уверенность, из которой её можно было бы вывести.
const defaultIntensity = 0.8

const resourceLimit = 3

type MessageStore interface {
	StoreUserMessage(ctx context.Context, userID int64, content string, emotionLabel string) (int64, error)
	StoreAssistantMessage(ctx context.Context, userID int64, content string) (int64, error)
	GetMessageByID(ctx context.Context, messageID int64) (*models.ChatMessage, error)
	SetFeedback(ctx context.Context, messageID int64, positive bool) error
	ListMessages(ctx context.Context, userID int64) ([]models.ChatMessage, error)
}

type EmotionRecorder interface {
	RecordEmotion(ctx context.Context, userID int64, emotionLabel string, intensity float64) (string, error)
}

type Responder interface {
	Respond(ctx context.Context, userMessage string, label emotion.Label, resources []therapy.Resource, crisisDetected bool, crisisLevel int) string
}

// TurnResult - итог одного хода диалога для отдачи веб-слою.
type TurnResult struct {
	AssistantText      string        `json:"message"`
	Emotion            emotion.Label `json:"emotion"`
	CrisisDetected     bool          `json:"crisis_detected"`
	CrisisLevel        int           `json:"crisis_level"`
	BackendDegraded    bool          `json:"api_error"`
	UserMessageID      int64         `json:"user_message_id"`
	AssistantMessageID int64         `json:"ai_message_id"`
}

// Service последовательно прогоняет сообщение пользователя через
// пайплайн: эмоция, кризис, сохранение, подбор ресурсов, генерация
// ответа, сохранение ответа.
type Service struct {
	messages  MessageStore
	moods     EmotionRecorder
	retriever *therapy.Retriever
	composer  Responder
}

func NewService(messages MessageStore, moods EmotionRecorder, retriever *therapy.Retriever, composer Responder) *Service {
	return &Service{
		messages:  messages,
		moods:     moods,
		retriever: retriever,
		composer:  composer,
	}
}

func (s *Service) HandleTurn(ctx context.Context, userID int64, rawText string) (*TurnResult, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	label := emotion.Detect(text)
	crisisDetected, crisisLevel := crisis.Detect(text)
	if crisisDetected {
		logrus.Warnf("Обнаружен кризисный сигнал у пользователя %d, уровень %d", userID, crisisLevel)
	}

	userMessageID, err := s.messages.StoreUserMessage(ctx, userID, text, string(label))
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения сообщения пользователя %d: %w", userID, err)
	}

	// Сбой записи эмоции не прерывает ход: сообщение уже сохранено,
	// пользователь всё равно должен получить ответ.
	if _, err := s.moods.RecordEmotion(ctx, userID, string(label), defaultIntensity); err != nil {
		logrus.Errorf("Ошибка записи эмоции для пользователя %d: %v", userID, err)
	}

	resources := s.retriever.Retrieve(ctx, text, label, resourceLimit)

	reply := s.composer.Respond(ctx, text, label, resources, crisisDetected, crisisLevel)
	degraded := assistant.IsDegradedResponse(reply)

	assistantMessageID, err := s.messages.StoreAssistantMessage(ctx, userID, reply)
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения ответа ассистента для пользователя %d: %w", userID, err)
	}

	return &TurnResult{
		AssistantText:      reply,
		Emotion:            label,
		CrisisDetected:     crisisDetected,
		CrisisLevel:        crisisLevel,
		BackendDegraded:    degraded,
		UserMessageID:      userMessageID,
		AssistantMessageID: assistantMessageID,
	}, nil
}

// SetFeedback сохраняет оценку ответа ассистента. Несуществующее,
// чужое или пользовательское сообщение неразличимы для вызывающего.
func (s *Service) SetFeedback(ctx context.Context, messageID int64, userID int64, positive bool) error {
	message, err := s.messages.GetMessageByID(ctx, messageID)
	if err != nil {
		return fmt.Errorf("ошибка поиска сообщения %d: %w", messageID, err)
	}
	if message == nil || message.UserID != userID || message.IsUser {
		return ErrMessageNotFound
	}

	if err := s.messages.SetFeedback(ctx, messageID, positive); err != nil {
		return fmt.Errorf("ошибка сохранения оценки сообщения %d: %w", messageID, err)
	}

	return nil
}

func (s *Service) GetChatHistory(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	logrus.Debugf("Получение истории чата пользователя %d", userID)
	return s.messages.ListMessages(ctx, userID)
}
