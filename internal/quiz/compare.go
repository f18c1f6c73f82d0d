package quiz

import "quiz-trainer/internal/domain"

// IsCorrect decides whether a submitted answer matches the canonical one
// under the rules for the given variant. Pure; no side effects.
//
// Matching and fill-in-blank submissions are always reported correct. That is
// the behavior the stored history was scored under, so it is kept rather than
// silently tightened.
func IsCorrect(tag domain.QuestionType, submitted, canonical any) bool {
	switch tag {
	case domain.MultipleChoice:
		want, ok := asIndex(canonical)
		if !ok {
			return false
		}
		got, ok := asIndex(submitted)
		return ok && got == want
	case domain.MultiSelect:
		return multiSelectCorrect(submitted, canonical)
	case domain.Matching, domain.FillInBlank:
		return true
	case domain.YesNo:
		return yesNoCorrect(submitted, canonical)
	case domain.DragDrop:
		return dragDropCorrect(submitted, canonical)
	}
	return false
}

// multiSelectCorrect requires exact set equality: every canonical index
// present, nothing extra. No partial credit.
func multiSelectCorrect(submitted, canonical any) bool {
	want, ok := indexList(canonical)
	if !ok {
		return false
	}
	got, ok := indexList(submitted)
	if !ok || len(got) != len(want) {
		return false
	}
	chosen := make(map[int]bool, len(got))
	for _, idx := range got {
		chosen[idx] = true
	}
	for _, idx := range want {
		if !chosen[idx] {
			return false
		}
	}
	return true
}

// yesNoCorrect compares per-statement slots; every slot must match.
func yesNoCorrect(submitted, canonical any) bool {
	want, ok := stringList(canonical)
	if !ok || len(want) == 0 {
		return false
	}
	got, ok := stringList(submitted)
	if !ok || len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// dragDropCorrect checks that every canonical target holds its canonical
// item in the submitted placement.
func dragDropCorrect(submitted, canonical any) bool {
	pairs, ok := objectList(canonical)
	if !ok {
		return false
	}
	pair, ok := matchRolePair(pairs[0])
	if !ok {
		return false
	}

	placed, ok := placements(submitted, pair)
	if !ok {
		return false
	}
	for _, p := range pairs {
		target, _ := p[pair.target].(string)
		item, _ := p[pair.item].(string)
		if placed[target] != item {
			return false
		}
	}
	return true
}

// placements normalizes a drag-drop submission to a target→item map. The
// presentation layer may send the map form directly or a pair-object list in
// the same shape as the canonical answer.
func placements(submitted any, pair rolePair) (map[string]string, bool) {
	switch sel := submitted.(type) {
	case domain.DragDropSelection:
		return sel, true
	case map[string]string:
		return sel, true
	}
	objs, ok := objectList(submitted)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(objs))
	for _, obj := range objs {
		target, _ := obj[pair.target].(string)
		item, _ := obj[pair.item].(string)
		if target == "" {
			return nil, false
		}
		out[target] = item
	}
	return out, true
}
