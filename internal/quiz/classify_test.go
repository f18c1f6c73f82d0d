package quiz

import (
	"encoding/json"
	"testing"

	"quiz-trainer/internal/domain"
)

func TestClassifyMultipleChoice(t *testing.T) {
	q := domain.Question{
		ID:            1,
		Question:      "Pick one",
		Options:       []string{"a", "b", "c"},
		CorrectAnswer: 2,
	}
	if got := Classify(q); got != domain.MultipleChoice {
		t.Fatalf("expected multiple_choice, got %s", got)
	}
}

func TestClassifyMultiSelect(t *testing.T) {
	q := domain.Question{
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: []any{0.0, 2.0},
	}
	if got := Classify(q); got != domain.MultiSelect {
		t.Fatalf("expected multi_select, got %s", got)
	}
}

func TestClassifyMatchingBeatsMultiSelect(t *testing.T) {
	// A list of definition objects matches both the matching and the
	// multi-select shapes; matching must win.
	q := domain.Question{
		CorrectAnswer: []any{
			map[string]any{"type": "Regression", "definition": "Predicting a number"},
			map[string]any{"type": "Clustering", "definition": "Grouping similar items"},
		},
	}
	if got := Classify(q); got != domain.Matching {
		t.Fatalf("expected matching, got %s", got)
	}
}

func TestClassifyFillInBlank(t *testing.T) {
	q := domain.Question{
		CorrectAnswer: map[string]any{"threshold": 0.5, "metric": "accuracy"},
	}
	if got := Classify(q); got != domain.FillInBlank {
		t.Fatalf("expected fill_in_blank, got %s", got)
	}
}

func TestClassifyYesNoWithoutOptions(t *testing.T) {
	q := domain.Question{
		Question:       "For each statement, select Yes or No.\nStatement one\nStatement two",
		CorrectAnswers: []any{"Yes", "No"},
	}
	if got := Classify(q); got != domain.YesNo {
		t.Fatalf("expected yes_no, got %s", got)
	}
}

func TestClassifyYesNoLiteralListWithOptions(t *testing.T) {
	q := domain.Question{
		Options:        []string{"unused"},
		CorrectAnswers: []any{"Yes", "Yes", "No"},
	}
	if got := Classify(q); got != domain.YesNo {
		t.Fatalf("expected yes_no, got %s", got)
	}
}

func TestClassifyDragDropPairedArrays(t *testing.T) {
	q := domain.Question{
		Types:     []string{"Regression", "Clustering"},
		Scenarios: []string{"Predict price", "Group customers"},
		CorrectAnswers: []any{
			map[string]any{"type": "Regression", "scenario": "Predict price"},
		},
	}
	if got := Classify(q); got != domain.DragDrop {
		t.Fatalf("expected drag_drop, got %s", got)
	}
}

func TestClassifyDragDropEmbeddedPairs(t *testing.T) {
	q := domain.Question{
		Question: "Match workloads to scenarios.\nWorkloads:\nVision\nScenarios:\nRead a sign",
		CorrectAnswers: []any{
			map[string]any{"workload": "Vision", "scenario": "Read a sign"},
		},
	}
	if got := Classify(q); got != domain.DragDrop {
		t.Fatalf("expected drag_drop, got %s", got)
	}
}

func TestClassifyDragDropBeatsYesNo(t *testing.T) {
	// Embedded pairs with no options list would also satisfy the yes/no
	// rule; drag-drop has higher precedence.
	q := domain.Question{
		CorrectAnswers: []any{
			map[string]any{"principle": "Fairness", "requirement": "Audit outcomes"},
		},
	}
	if got := Classify(q); got != domain.DragDrop {
		t.Fatalf("expected drag_drop, got %s", got)
	}
}

func TestClassifyMalformedFallsBack(t *testing.T) {
	if got := Classify(domain.Question{}); got != domain.MultipleChoice {
		t.Fatalf("expected fallback to multiple_choice, got %s", got)
	}
	if got := Classify(domain.Question{CorrectAnswer: "garbage"}); got != domain.MultipleChoice {
		t.Fatalf("expected fallback to multiple_choice, got %s", got)
	}
}

func TestClassifyDecodedJSON(t *testing.T) {
	// Shapes as they arrive from a bank file rather than Go literals.
	raw := `{
		"id": 7,
		"question": "Select all supervised techniques",
		"options": ["Regression", "Clustering", "Classification"],
		"correctAnswer": [0, 2]
	}`
	var q domain.Question
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := Classify(q); got != domain.MultiSelect {
		t.Fatalf("expected multi_select, got %s", got)
	}
}
