package quiz

// NoAnswerText is the display placeholder for an absent selection.
const NoAnswerText = "No answer selected"

// AnswerText converts a raw selection into display text. Index selections are
// resolved against the option list (order preserved); anything that is not an
// index into the options passes through unchanged so structured answers
// (yes/no slots, drag-drop pairs, fill-in maps) render as-is.
func AnswerText(selection any, options []string) any {
	if selection == nil {
		return NoAnswerText
	}
	if len(options) > 0 {
		if indices, ok := indexList(selection); ok {
			texts := make([]string, 0, len(indices))
			for _, idx := range indices {
				texts = append(texts, optionAt(options, idx))
			}
			return texts
		}
		if idx, ok := asIndex(selection); ok {
			return optionAt(options, idx)
		}
	}
	return selection
}

// OptionLetter maps an option index to its display letter: 0→"A", 1→"B", …
func OptionLetter(index int) string {
	return string(rune('A' + index))
}

func optionAt(options []string, idx int) string {
	if idx < 0 || idx >= len(options) {
		return ""
	}
	return options[idx]
}
