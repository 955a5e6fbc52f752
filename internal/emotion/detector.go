package emotion

import (
	"strings"
)

type Label string

const (
	Angry     Label = "angry"
	Anxious   Label = "anxious"
	Depressed Label = "depressed"
	Fearful   Label = "fearful"
	Happy     Label = "happy"
	Sad       Label = "sad"
	Stressed  Label = "stressed"
	Calm      Label = "calm"
	Hopeful   Label = "hopeful"
	Neutral   Label = "neutral"
)

// Порядок фиксирован: при равном числе совпадений побеждает первая эмоция из списка.
var orderedLabels = []Label{Angry, Anxious, Depressed, Fearful, Happy, Sad, Stressed, Calm, Hopeful}

var emotionKeywords = map[Label][]string{
	Angry:     {"angry", "anger", "mad", "furious", "rage", "hate", "frustrated"},
	Anxious:   {"anxious", "anxiety", "worry", "worried", "nervous", "uneasy", "panic"},
	Depressed: {"depressed", "depression", "hopeless", "worthless", "empty", "numb"},
	Fearful:   {"afraid", "scared", "terrified", "fear", "frightened", "terror"},
	Happy:     {"happy", "joy", "glad", "pleased", "delighted", "excited", "grateful"},
	Sad:       {"sad", "unhappy", "miserable", "down", "blue", "upset", "heartbroken"},
	Stressed:  {"stressed", "overwhelmed", "pressure", "burden", "overloaded"},
	Calm:      {"calm", "peaceful", "relaxed", "serene", "tranquil", "composed"},
	Hopeful:   {"hopeful", "optimistic", "looking forward", "positive", "better"},
}

// Detect определяет доминирующую эмоцию текста по частоте ключевых слов.
// Поиск идёт по вхождению подстроки, без стемминга и без обработки отрицаний:
// "not sad" всё равно даст совпадение для sad. Это известное ограничение.
func Detect(text string) Label {
	lowered := strings.ToLower(text)

	best := Neutral
	bestCount := 0
	for _, label := range orderedLabels {
		count := 0
		for _, keyword := range emotionKeywords[label] {
			if strings.Contains(lowered, keyword) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = label
		}
	}

	return best
}

// Labels возвращает полный набор эмоций, включая neutral.
func Labels() []Label {
	labels := make([]Label, 0, len(orderedLabels)+1)
	labels = append(labels, orderedLabels...)
	return append(labels, Neutral)
}
