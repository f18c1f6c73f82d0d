package quiz

import "quiz-trainer/internal/domain"

// rolePair names the two sides of a drag-drop question: draggable items and
// the targets they land on.
type rolePair struct {
	item   string
	target string
}

// dragRolePairs are the recognized key pairs for embedded drag-drop answers,
// checked in order.
var dragRolePairs = []rolePair{
	{item: "workload", target: "scenario"},
	{item: "principle", target: "requirement"},
	{item: "type", target: "scenario"},
}

// Classify infers the question variant from its shape. The bank format has no
// explicit type field, so the rules below reconstruct intent; they are
// evaluated in precedence order because several shapes overlap (a drag-drop
// payload would otherwise read as a plain multi-select). Classification is
// total: anything unrecognized falls through to MultipleChoice so one
// malformed record cannot abort a session.
func Classify(q domain.Question) domain.QuestionType {
	// Paired-array drag-drop: items and targets supplied as parallel arrays
	// alongside a structured answer list.
	if q.CorrectAnswers != nil {
		if len(q.Types) > 0 && len(q.Scenarios) > 0 {
			return domain.DragDrop
		}
		if len(q.Workloads) > 0 && len(q.Scenarios) > 0 {
			return domain.DragDrop
		}
		if len(q.Principles) > 0 && len(q.Requirements) > 0 {
			return domain.DragDrop
		}
	}

	// Embedded-pair drag-drop: the answer list itself carries role-keyed objects.
	if objs, ok := objectList(q.CorrectAnswers); ok {
		if _, matched := matchRolePair(objs[0]); matched {
			return domain.DragDrop
		}
	}

	// Yes/No: a plural answer payload with no options list, or a list of
	// literal "Yes"/"No" strings.
	if q.CorrectAnswers != nil && len(q.Options) == 0 {
		return domain.YesNo
	}
	if strs, ok := stringList(q.Canonical()); ok && isYesNoList(strs) {
		return domain.YesNo
	}

	if list, ok := asList(q.CorrectAnswer); ok {
		if len(list) > 0 {
			if obj, isObj := asObject(list[0]); isObj {
				if _, hasDef := obj["definition"]; hasDef {
					return domain.Matching
				}
			}
		}
		return domain.MultiSelect
	}

	if _, ok := asObject(q.CorrectAnswer); ok {
		return domain.FillInBlank
	}

	return domain.MultipleChoice
}

// matchRolePair reports which recognized item/target key pair an embedded
// answer object uses.
func matchRolePair(obj map[string]any) (rolePair, bool) {
	for _, pair := range dragRolePairs {
		if _, hasItem := obj[pair.item]; !hasItem {
			continue
		}
		if _, hasTarget := obj[pair.target]; hasTarget {
			return pair, true
		}
	}
	return rolePair{}, false
}

func isYesNoList(strs []string) bool {
	if len(strs) == 0 {
		return false
	}
	for _, s := range strs {
		if s != "Yes" && s != "No" {
			return false
		}
	}
	return true
}
