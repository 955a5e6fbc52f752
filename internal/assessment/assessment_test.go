package assessment

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/jmoiron/sqlx/types"
)

func fullAnswers(value int) map[string]int {
	return map[string]int{
		"q1": value, "q2": value, "q3": value, "q4": value,
		"q5": value, "q6": value, "q7": value,
	}
}

func TestValidateAnswers(t *testing.T) {
	if err := validateAnswers(fullAnswers(3)); err != nil {
		t.Fatalf("unexpected error for valid answers: %v", err)
	}

	missing := fullAnswers(3)
	delete(missing, "q4")
	if !errors.Is(validateAnswers(missing), ErrInvalidAnswers) {
		t.Fatal("expected ErrInvalidAnswers for missing question")
	}

	outOfRange := fullAnswers(3)
	outOfRange["q2"] = 6
	if !errors.Is(validateAnswers(outOfRange), ErrInvalidAnswers) {
		t.Fatal("expected ErrInvalidAnswers for value out of range")
	}

	wrongKey := fullAnswers(3)
	delete(wrongKey, "q7")
	wrongKey["q8"] = 3
	if !errors.Is(validateAnswers(wrongKey), ErrInvalidAnswers) {
		t.Fatal("expected ErrInvalidAnswers for unknown question key")
	}
}

func TestScoreAnswersNormalization(t *testing.T) {
	cases := []struct {
		answers  map[string]int
		expected float64
	}{
		{fullAnswers(5), 100},
		{fullAnswers(1), 20},
		{map[string]int{"q1": 5, "q2": 5, "q3": 5, "q4": 5, "q5": 5, "q6": 5, "q7": 0}, 600.0 / 7},
	}

	for _, tc := range cases {
		score := scoreAnswers(tc.answers)
		if math.Abs(score-tc.expected) > 1e-9 {
			t.Fatalf("expected score %v, got %v", tc.expected, score)
		}
	}
}

func TestAnswersRoundTrip(t *testing.T) {
	answers := map[string]int{"q1": 1, "q2": 2, "q3": 3, "q4": 4, "q5": 5, "q6": 4, "q7": 3}

	encoded, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := &Assessment{Answers: types.JSONText(encoded)}
	decoded, err := stored.GetAnswers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decoded) != len(answers) {
		t.Fatalf("expected %d answers, got %d", len(answers), len(decoded))
	}
	for key, value := range answers {
		if decoded[key] != value {
			t.Fatalf("answer %s: expected %d, got %d", key, value, decoded[key])
		}
	}
}
