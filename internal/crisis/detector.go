package crisis

import (
	"regexp"
	"strings"
)

// Фразы прямого риска: упоминания суицида, самоповреждения, планирования.
// Намеренно высокая чувствительность, ложные срабатывания допустимы.
var highRiskPhrases = []string{
	"kill myself", "end my life", "suicide", "want to die", "better off dead",
	"no reason to live", "can't go on", "don't want to be alive", "take my own life",

	"cut myself", "hurt myself", "self-harm", "injure myself", "burning myself",

	"suicide plan", "how to kill", "painless way", "saying goodbye", "final note",
	"wrote a note", "giving away", "put my affairs in order",
}

var mediumRiskPhrases = []string{
	"no hope", "hopeless", "can't take it anymore", "too much pain",
	"tired of living", "what's the point", "unbearable", "nobody cares",
	"trapped", "burden to others", "no way out", "everything is pointless",
}

// Индикаторы срочности усиливают одиночный сигнал среднего риска.
var urgencyIndicators = []string{"tonight", "soon", "right now", "today", "immediately"}

var (
	highRiskPatterns   = compilePhrasePatterns(highRiskPhrases)
	mediumRiskPatterns = compilePhrasePatterns(mediumRiskPhrases)
)

func compilePhrasePatterns(phrases []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(phrases))
	for i, phrase := range phrases {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
	}
	return patterns
}

// Detect оценивает кризисные сигналы в сообщении пользователя.
// Возвращает флаг кризиса и уровень серьёзности от 0 до 10:
// 8-10 — прямые формулировки самоповреждения, 5-7 — несколько фраз
// среднего риска, 4-6 — одиночная фраза среднего риска.
func Detect(text string) (bool, int) {
	lowered := strings.ToLower(text)

	// Прямой риск: первая совпавшая фраза завершает проверку,
	// серьёзность растёт с числом её повторов в тексте.
	for i, pattern := range highRiskPatterns {
		if pattern.MatchString(lowered) {
			severity := 8 + strings.Count(lowered, highRiskPhrases[i])
			if severity > 10 {
				severity = 10
			}
			return true, severity
		}
	}

	mediumRiskCount := 0
	for _, pattern := range mediumRiskPatterns {
		if pattern.MatchString(lowered) {
			mediumRiskCount++
		}
	}

	if mediumRiskCount >= 2 {
		severity := 5 + mediumRiskCount - 2
		if severity > 7 {
			severity = 7
		}
		return true, severity
	}

	if mediumRiskCount == 1 {
		for _, indicator := range urgencyIndicators {
			if strings.Contains(lowered, indicator) {
				return true, 6
			}
		}
		return true, 4
	}

	return false, 0
}
