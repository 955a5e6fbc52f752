package crisis

import "testing"

func TestDetectHighRiskPhrase(t *testing.T) {
	detected, severity := Detect("Sometimes I think I should kill myself")
	if !detected {
		t.Fatal("expected crisis to be detected")
	}
	if severity < 8 {
		t.Fatalf("expected severity >= 8 for explicit self-harm language, got %d", severity)
	}
}

func TestDetectHighRiskRepetitionRaisesSeverity(t *testing.T) {
	_, once := Detect("I want to kill myself")
	_, twice := Detect("kill myself, I keep thinking it, kill myself")
	if twice <= once {
		t.Fatalf("expected repeated phrase to raise severity: %d vs %d", once, twice)
	}
	if twice > 10 {
		t.Fatalf("severity out of range: %d", twice)
	}
}

func TestDetectHighRiskRequiresWordBoundary(t *testing.T) {
	detected, severity := Detect("she studies suicidology at the university")
	if detected || severity != 0 {
		t.Fatalf("expected no crisis for partial word match, got (%v, %d)", detected, severity)
	}
}

func TestDetectTwoMediumRiskPhrases(t *testing.T) {
	detected, severity := Detect("I feel hopeless and trapped")
	if !detected {
		t.Fatal("expected crisis to be detected")
	}
	if severity != 5 {
		t.Fatalf("expected severity 5 for two medium-risk phrases, got %d", severity)
	}
}

func TestDetectSingleMediumRiskPhrase(t *testing.T) {
	detected, severity := Detect("everything feels hopeless lately")
	if !detected {
		t.Fatal("expected crisis to be detected")
	}
	if severity != 4 {
		t.Fatalf("expected severity 4 for single medium-risk phrase, got %d", severity)
	}
}

func TestDetectSingleMediumRiskWithUrgency(t *testing.T) {
	detected, severity := Detect("everything feels hopeless tonight")
	if !detected {
		t.Fatal("expected crisis to be detected")
	}
	if severity != 6 {
		t.Fatalf("expected severity 6 for medium risk with urgency indicator, got %d", severity)
	}
}

func TestDetectNoCrisis(t *testing.T) {
	detected, severity := Detect("I had a pretty good week, thanks for asking")
	if detected || severity != 0 {
		t.Fatalf("expected (false, 0), got (%v, %d)", detected, severity)
	}
}

func TestDetectSeverityAlwaysInRange(t *testing.T) {
	inputs := []string{
		"",
		"kill myself kill myself kill myself kill myself",
		"no hope, hopeless, trapped, unbearable, nobody cares, no way out",
		"just an ordinary message",
	}
	for _, input := range inputs {
		_, severity := Detect(input)
		if severity < 0 || severity > 10 {
			t.Fatalf("severity out of range for %q: %d", input, severity)
		}
	}
}
