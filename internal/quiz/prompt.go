package quiz

import (
	"strings"

	"quiz-trainer/internal/domain"
)

// Prompt returns the text to present as the question. Yes/no and drag-drop
// banks embed their sub-statements and item lists after the first line, so
// only the instruction line is shown for those variants.
func Prompt(q domain.Question, tag domain.QuestionType) string {
	if tag == domain.YesNo || tag == domain.DragDrop {
		if idx := strings.IndexByte(q.Question, '\n'); idx >= 0 {
			return q.Question[:idx]
		}
	}
	return q.Question
}

// Statements extracts the per-slot statements of a yes/no question from its
// text: every non-empty line after the instruction line, minus "For each"
// filler lines.
func Statements(q domain.Question) []string {
	var lines []string
	for _, line := range strings.Split(q.Question, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if len(lines) <= 1 {
		return nil
	}
	statements := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, "For each") {
			continue
		}
		statements = append(statements, line)
	}
	return statements
}

// DragDropLayout describes the draggable items and drop targets of a
// drag-drop question, with display labels for each column.
type DragDropLayout struct {
	Items       []string
	Targets     []string
	ItemLabel   string
	TargetLabel string
}

// Layout resolves a drag-drop question's items and targets. Paired-array
// banks carry them directly; older banks embed them in the question text as
// labelled sections ("Workloads:", "Scenarios:", …).
func Layout(q domain.Question) DragDropLayout {
	switch {
	case len(q.Types) > 0 && len(q.Scenarios) > 0:
		return DragDropLayout{Items: q.Types, Targets: q.Scenarios, ItemLabel: "Learning Types", TargetLabel: "Definitions"}
	case len(q.Workloads) > 0 && len(q.Scenarios) > 0:
		return DragDropLayout{Items: q.Workloads, Targets: q.Scenarios, ItemLabel: "AI Workloads", TargetLabel: "Scenarios"}
	case len(q.Principles) > 0 && len(q.Requirements) > 0:
		return DragDropLayout{Items: q.Principles, Targets: q.Requirements, ItemLabel: "Principles", TargetLabel: "Requirements"}
	}

	lines := strings.Split(q.Question, "\n")
	if items, targets, ok := section(lines, "Workloads:", "Scenarios:"); ok {
		return DragDropLayout{Items: items, Targets: targets, ItemLabel: "AI Workloads", TargetLabel: "Scenarios"}
	}
	if items, targets, ok := section(lines, "Principles:", "Requirements:"); ok {
		return DragDropLayout{Items: items, Targets: targets, ItemLabel: "Principles", TargetLabel: "Requirements"}
	}
	if items, targets, ok := section(lines, "Types:", "Scenarios:"); ok {
		return DragDropLayout{Items: items, Targets: targets, ItemLabel: "ML Types", TargetLabel: "Scenarios"}
	}
	return DragDropLayout{ItemLabel: "Items", TargetLabel: "Targets"}
}

// section splits the question text at the two given headers: items between
// them, targets after the second.
func section(lines []string, itemHeader, targetHeader string) (items, targets []string, ok bool) {
	itemStart, targetStart := -1, -1
	for i, line := range lines {
		if itemStart == -1 && strings.Contains(line, itemHeader) {
			itemStart = i
			continue
		}
		if itemStart != -1 && strings.Contains(line, targetHeader) {
			targetStart = i
			break
		}
	}
	if itemStart == -1 || targetStart == -1 {
		return nil, nil, false
	}
	for _, line := range lines[itemStart+1 : targetStart] {
		if strings.TrimSpace(line) != "" {
			items = append(items, strings.TrimSpace(line))
		}
	}
	for _, line := range lines[targetStart+1:] {
		if strings.TrimSpace(line) != "" {
			targets = append(targets, strings.TrimSpace(line))
		}
	}
	return items, targets, true
}
