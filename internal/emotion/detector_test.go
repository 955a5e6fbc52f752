package emotion

import "testing"

func TestDetectNeutralWhenNoKeywords(t *testing.T) {
	label := Detect("the weather report said nothing interesting")
	if label != Neutral {
		t.Fatalf("expected neutral, got %s", label)
	}
}

func TestDetectDominantEmotion(t *testing.T) {
	label := Detect("I am so anxious and worried, full of worry and panic")
	if label != Anxious {
		t.Fatalf("expected anxious, got %s", label)
	}
}

func TestDetectTieBrokenByDeclarationOrder(t *testing.T) {
	// angry и sad дают по одному совпадению, побеждает angry как первая в списке
	label := Detect("I am mad and sad")
	if label != Angry {
		t.Fatalf("expected angry on tie, got %s", label)
	}
}

func TestDetectIsCaseInsensitive(t *testing.T) {
	label := Detect("SO HAPPY AND GRATEFUL TODAY")
	if label != Happy {
		t.Fatalf("expected happy, got %s", label)
	}
}

func TestDetectIgnoresNegation(t *testing.T) {
	// Отрицания не обрабатываются: совпадение засчитывается и внутри "not sad"
	label := Detect("I am not sad at all")
	if label != Sad {
		t.Fatalf("expected sad despite negation, got %s", label)
	}
}

func TestLabelsIncludesNeutral(t *testing.T) {
	labels := Labels()
	if len(labels) != 10 {
		t.Fatalf("expected 10 labels, got %d", len(labels))
	}
	if labels[len(labels)-1] != Neutral {
		t.Fatalf("expected neutral last, got %s", labels[len(labels)-1])
	}
}
