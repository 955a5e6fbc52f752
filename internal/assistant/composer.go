package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindwell/internal/emotion"
	"mindwell/internal/therapy"

	"github.com/sirupsen/logrus"
)

const systemPrompt = `You are an AI-powered mental health assistant designed to provide supportive conversations and coping strategies.
You are not a replacement for a licensed therapist but can offer evidence-based techniques and empathetic responses.
Always prioritize user safety and well-being. Be empathetic, warm, and conversational in your tone.

When responding:
1. Acknowledge the user's emotions with empathy
2. Provide evidence-based coping strategies when appropriate
3. Encourage healthy behaviors and thought patterns
4. Never diagnose medical conditions or prescribe medications
5. If a user appears to be in crisis, provide crisis resources and encourage professional help

The user's detected emotion in this message is: %s`

const crisisDirective = `
IMPORTANT: Crisis detected (level: %d/10).
Prioritize safety and provide appropriate crisis resources.
Be direct yet compassionate about the importance of seeking immediate help.
Include the National Suicide Prevention Lifeline (988) and Crisis Text Line (text HOME to 741741).`

// Фиксированные ответы при отказах бекенда. Тексты зафиксированы:
// оркестратор по маркерам из них определяет деградацию сервиса.
const (
	missingKeyMessage = "I apologize, but I need an AI API key to function properly. Please ask the administrator to provide a valid API key."
	quotaMessage      = "I apologize, but the AI service is currently unavailable due to API usage limits. Please contact the administrator to update the API quota."
	overloadedMessage = "The AI service is temporarily unavailable due to high demand. Please try again in a few moments."
	authIssueMessage  = "I apologize, but there seems to be an issue with the API authentication. Please contact the administrator to provide a valid API key."
)

var degradedMarkers = []string{"API usage limits", "temporarily unavailable"}

// IsDegradedResponse сообщает, является ли текст ответа подстановкой
// из-за недоступности или исчерпания квоты бекенда.
func IsDegradedResponse(text string) bool {
	for _, marker := range degradedMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Composer собирает промпт из сигналов пайплайна и вызывает языковую
// модель. Любой отказ бекенда преобразуется в безопасный для
// пользователя текст, ошибка наружу не возвращается.
type Composer struct {
	backend Backend
	timeout time.Duration
}

func NewComposer(backend Backend, timeout time.Duration) *Composer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Composer{
		backend: backend,
		timeout: timeout,
	}
}

// Respond генерирует ответ ассистента на сообщение пользователя.
func (c *Composer) Respond(ctx context.Context, userMessage string, label emotion.Label, resources []therapy.Resource, crisisDetected bool, crisisLevel int) string {
	prompt := buildPrompt(userMessage, label, resources, crisisDetected, crisisLevel)

	genCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.backend.Generate(genCtx, prompt)
	if err != nil {
		logrus.Errorf("Ошибка генерации ответа ассистента: %v", err)
		return fallbackMessage(err, label)
	}

	return response
}

func buildPrompt(userMessage string, label emotion.Label, resources []therapy.Resource, crisisDetected bool, crisisLevel int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(systemPrompt, label))
	if crisisDetected {
		sb.WriteString(fmt.Sprintf(crisisDirective, crisisLevel))
	}

	if len(resources) > 0 {
		sb.WriteString("\n\nHere are some relevant therapeutic approaches that might help:\n")
		for _, resource := range resources {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", resource.Title, resource.Summary))
		}
	}

	sb.WriteString("\n\nUser message: ")
	sb.WriteString(userMessage)

	return sb.String()
}

func fallbackMessage(err error, label emotion.Label) string {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		switch backendErr.Kind {
		case FailureMissingKey:
			return missingKeyMessage
		case FailureQuotaExceeded:
			return quotaMessage
		case FailureOverloaded:
			return overloadedMessage
		case FailureUnauthenticated:
			return authIssueMessage
		}
	}

	// Остальные отказы закрываем поддерживающим текстом под эмоцию
	switch label {
	case emotion.Sad, emotion.Depressed:
		return "I notice you might be feeling down. While we're experiencing some technical difficulties, remember that it's okay to reach out to friends, family, or professional support when needed. Deep breathing exercises and gentle physical activity can sometimes help lift your mood."
	case emotion.Anxious, emotion.Stressed:
		return "I sense you might be feeling anxious. While our systems are currently experiencing technical issues, a quick grounding exercise might help: try naming 5 things you can see, 4 things you can touch, 3 things you can hear, 2 things you can smell, and 1 thing you can taste."
	case emotion.Angry:
		return "I can understand feeling frustrated, especially when technology isn't working as expected. Taking a short break, some deep breaths, or a brief walk might help provide some perspective."
	default:
		return "I apologize for the technical difficulties we're experiencing. While I work to resolve this issue, is there something specific you'd like to discuss or any particular coping strategies you've found helpful in the past?"
	}
}
