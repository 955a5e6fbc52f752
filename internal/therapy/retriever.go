package therapy

import (
	"context"
	"strings"

	"mindwell/internal/emotion"

	"github.com/sirupsen/logrus"
)

// Resource - краткое описание терапевтической техники, которое
// передаётся ассистенту как дополнительный контекст.
type Resource struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary"`
}

// DocumentSource - опциональная внешняя коллекция терапевтических документов.
type DocumentSource interface {
	Documents(ctx context.Context) ([]Document, error)
}

type Retriever struct {
	source DocumentSource
}

// NewRetriever создаёт ретривер. source может быть nil,
// тогда всегда используется статический набор ресурсов.
func NewRetriever(source DocumentSource) *Retriever {
	return &Retriever{source: source}
}

// Retrieve подбирает ресурсы под эмоцию пользователя. Сначала фильтрует
// внешнюю коллекцию по вхождению эмоции в заголовок или текст документа,
// при пустом результате или ошибке источника возвращает статический набор.
// Параметр text и limit сверх длины статических списков пока не
// используются резервным путём - это зафиксированное поведение контракта.
func (r *Retriever) Retrieve(ctx context.Context, text string, label emotion.Label, limit int) []Resource {
	if limit <= 0 {
		limit = 3
	}

	if r.source != nil {
		docs, err := r.source.Documents(ctx)
		if err != nil {
			logrus.Warnf("Ошибка источника терапевтических документов: %v", err)
		} else if matched := filterByEmotion(docs, label, limit); len(matched) > 0 {
			return matched
		}
	}

	return fallbackResources(label)
}

func filterByEmotion(docs []Document, label emotion.Label, limit int) []Resource {
	keyword := strings.ToLower(string(label))
	if keyword == "" {
		return nil
	}

	var matched []Resource
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Title), keyword) ||
			strings.Contains(strings.ToLower(doc.Content), keyword) {
			matched = append(matched, Resource{Title: doc.Title, Summary: doc.Summary})
			if len(matched) >= limit {
				break
			}
		}
	}
	return matched
}

var resourcesByEmotion = map[emotion.Label][]Resource{
	emotion.Anxious: {
		{
			Title:   "Deep Breathing Exercise",
			Summary: "Breathe in slowly for 4 counts, hold for 2, exhale for 6. Repeat 5-10 times to activate the parasympathetic nervous system.",
		},
		{
			Title:   "Grounding Technique",
			Summary: "Use the 5-4-3-2-1 technique: identify 5 things you see, 4 things you can touch, 3 things you hear, 2 things you smell, and 1 thing you taste.",
		},
	},
	emotion.Sad: {
		{
			Title:   "Behavioral Activation",
			Summary: "Schedule small, achievable positive activities throughout your day, even when you don't feel motivated.",
		},
		{
			Title:   "Self-Compassion Practice",
			Summary: "Speak to yourself as you would to a good friend who is going through a difficult time.",
		},
	},
	emotion.Angry: {
		{
			Title:   "Time-Out Strategy",
			Summary: "When feeling overwhelmed with anger, take a break for 10-20 minutes before responding.",
		},
		{
			Title:   "Cognitive Reframing",
			Summary: "Challenge thoughts like 'they always' or 'they never' with more balanced perspectives.",
		},
	},
	emotion.Depressed: {
		{
			Title:   "Small Goals Approach",
			Summary: "Break tasks into the smallest possible steps and celebrate completing each one.",
		},
		{
			Title:   "Thought Record",
			Summary: "Write down negative thoughts, identify the cognitive distortion, and create a more balanced thought.",
		},
	},
	emotion.Stressed: {
		{
			Title:   "Progressive Muscle Relaxation",
			Summary: "Tense and then release each muscle group from toes to head to reduce physical tension.",
		},
		{
			Title:   "Mindful Focus Exercise",
			Summary: "Focus completely on one simple task like washing dishes, bringing attention back whenever your mind wanders.",
		},
	},
	emotion.Fearful: {
		{
			Title:   "Exposure Hierarchy",
			Summary: "Create a ladder of feared situations from least to most anxiety-provoking, and gradually expose yourself to each level.",
		},
		{
			Title:   "Worry Time",
			Summary: "Schedule 15-30 minutes daily to focus on worries, postponing worry thoughts outside of this time.",
		},
	},
}

var genericResources = []Resource{
	{
		Title:   "Mindfulness Meditation",
		Summary: "Focus on your breath for 5 minutes, gently returning attention whenever your mind wanders.",
	},
	{
		Title:   "Gratitude Practice",
		Summary: "Write down three things you're grateful for each day to shift focus toward positive aspects of life.",
	},
}

func fallbackResources(label emotion.Label) []Resource {
	if resources, ok := resourcesByEmotion[label]; ok {
		return resources
	}
	return genericResources
}
