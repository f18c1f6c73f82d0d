package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"quiz-trainer/internal/config"
	"quiz-trainer/internal/domain"
	"quiz-trainer/internal/quiz"
)

// NewPlayCmd builds the interactive terminal quiz subcommand.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play [bank]",
		Short: "Play a quiz bank in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bankName := ""
			if len(args) > 0 {
				bankName = args[0]
			}
			return runPlay(cmd.Context(), *configPath, bankName)
		},
	}
}

func runPlay(ctx context.Context, configPath, bankName string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	in := bufio.NewScanner(os.Stdin)

	if bankName == "" {
		bankName, err = pickBank(in, d.bankList)
		if err != nil {
			return err
		}
	}

	session := quiz.NewSession(d.banks, d.history)
	if err := session.Start(ctx, bankName); err != nil {
		if errors.Is(err, domain.ErrNoQuestions) {
			fmt.Println("No questions available in this bank.")
			return nil
		}
		return err
	}

	for {
		for session.State() == quiz.StateInProgress {
			askQuestion(in, session)
			if !session.Advance(ctx) {
				fmt.Println("Select an answer first.")
			}
		}

		result, _ := session.Result()
		printResult(result)

		if result.CorrectAnswers == result.TotalQuestions {
			return nil
		}
		fmt.Print("Retry wrong answers? [y/N] ")
		if !in.Scan() || !strings.EqualFold(strings.TrimSpace(in.Text()), "y") {
			return nil
		}
		if !session.RetryWrongAnswers() {
			return nil
		}
		fmt.Println("\nRetrying missed questions...")
	}
}

func pickBank(in *bufio.Scanner, banks []domain.QuestionBank) (string, error) {
	if len(banks) == 0 {
		return "", domain.ErrBankNotFound
	}
	fmt.Println("Available question banks:")
	for i, b := range banks {
		fmt.Printf("  %d) %s\n", i+1, b.DisplayName)
	}
	for {
		fmt.Print("Pick a bank: ")
		if !in.Scan() {
			return "", domain.ErrBankNotFound
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && n >= 1 && n <= len(banks) {
			return banks[n-1].Name, nil
		}
		fmt.Println("Invalid choice.")
	}
}

func askQuestion(in *bufio.Scanner, session *quiz.Session) {
	q, ok := session.Current()
	if !ok {
		return
	}
	tag := session.CurrentType()
	number, total := session.Progress()

	fmt.Printf("\nQuestion %d of %d", number, total)
	if session.RetryMode() {
		fmt.Print(" (retry)")
	}
	fmt.Printf("\n%s\n", quiz.Prompt(q, tag))

	switch tag {
	case domain.MultipleChoice:
		printOptions(q.Options)
		fmt.Print("Answer: ")
		if in.Scan() {
			if idx, ok := letterIndex(in.Text(), len(q.Options)); ok {
				session.SelectOption(idx)
			}
		}
	case domain.MultiSelect:
		printOptions(q.Options)
		fmt.Print("Answers (select all that apply, e.g. A C): ")
		if in.Scan() {
			for _, field := range strings.Fields(in.Text()) {
				if idx, ok := letterIndex(field, len(q.Options)); ok {
					session.SelectOption(idx)
				}
			}
		}
	case domain.YesNo:
		statements := quiz.Statements(q)
		slots := make(domain.YesNoSelection, len(statements))
		for i, statement := range statements {
			fmt.Printf("  %d. %s\n", i+1, statement)
			fmt.Print("     Yes or No? ")
			if in.Scan() && strings.EqualFold(strings.TrimSpace(in.Text()), "yes") {
				slots[i] = "Yes"
			} else {
				slots[i] = "No"
			}
		}
		session.SetSelection(slots)
	case domain.DragDrop:
		layout := quiz.Layout(q)
		fmt.Printf("%s:\n", layout.ItemLabel)
		for i, item := range layout.Items {
			fmt.Printf("  %d) %s\n", i+1, item)
		}
		placements := make(domain.DragDropSelection)
		for _, target := range layout.Targets {
			fmt.Printf("%s: %s\n", layout.TargetLabel, target)
			fmt.Print("  Place item number: ")
			if in.Scan() {
				if n, err := strconv.Atoi(strings.TrimSpace(in.Text())); err == nil && n >= 1 && n <= len(layout.Items) {
					placements[target] = layout.Items[n-1]
				}
			}
		}
		session.SetSelection(placements)
	default:
		// Matching and fill-in-blank are review-style: show the canonical
		// answer and move on.
		fmt.Printf("Answer key: %s\n", displayText(quiz.AnswerText(q.Canonical(), q.Options)))
	}

	if note := session.Note(); note != "" {
		fmt.Printf("Saved note: %s\n", note)
	}
	fmt.Print("Note (enter to skip): ")
	if in.Scan() {
		if text := strings.TrimSpace(in.Text()); text != "" {
			session.SetNote(text)
		}
	}
}

func printOptions(options []string) {
	for i, option := range options {
		fmt.Printf("  %s) %s\n", quiz.OptionLetter(i), option)
	}
}

func letterIndex(input string, optionCount int) (int, bool) {
	trimmed := strings.ToUpper(strings.TrimSpace(input))
	if len(trimmed) != 1 {
		return 0, false
	}
	idx := int(trimmed[0] - 'A')
	if idx < 0 || idx >= optionCount {
		return 0, false
	}
	return idx, true
}

func printResult(result domain.QuizResult) {
	fmt.Printf("\nScore: %.0f%% (%d of %d correct)\n", result.Score, result.CorrectAnswers, result.TotalQuestions)
	for i, answer := range result.AnswerHistory {
		mark := "✗"
		if answer.IsCorrect {
			mark = "✓"
		}
		fmt.Printf("%s %d. %s\n", mark, i+1, firstLine(answer.Question))
		fmt.Printf("    your answer:    %s\n", displayText(answer.SelectedAnswerText))
		if !answer.IsCorrect {
			fmt.Printf("    correct answer: %s\n", displayText(answer.CorrectAnswerText))
		}
		if answer.Notes != "" {
			fmt.Printf("    note: %s\n", answer.Notes)
		}
	}
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}

func displayText(text any) string {
	switch v := text.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case domain.YesNoSelection:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
