package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"quiz-trainer/internal/config"
	"quiz-trainer/internal/history"
)

// NewHistoryCmd groups the attempt-history subcommands.
func NewHistoryCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Review, delete, or clear stored quiz attempts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored attempts and summary statistics",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistory(cmd.Context(), *configPath, listHistory)
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one attempt in detail",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistory(cmd.Context(), *configPath, func(ctx context.Context, store *history.Store) error {
					return showAttempt(ctx, store, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete one attempt",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistory(cmd.Context(), *configPath, func(ctx context.Context, store *history.Store) error {
					return store.DeleteByID(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all stored attempts",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistory(cmd.Context(), *configPath, func(ctx context.Context, store *history.Store) error {
					return store.ClearAll(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "notes <bank>",
			Short: "Show recalled per-question notes for a bank",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistory(cmd.Context(), *configPath, func(ctx context.Context, store *history.Store) error {
					return showNotes(ctx, store, args[0])
				})
			},
		},
	)
	return cmd
}

func withHistory(ctx context.Context, configPath string, fn func(context.Context, *history.Store) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()
	return fn(ctx, d.history)
}

func listHistory(ctx context.Context, store *history.Store) error {
	h := store.Load(ctx)
	if h.TotalAttempts == 0 {
		fmt.Println("No attempts recorded yet.")
		return nil
	}
	for _, attempt := range h.Attempts {
		fmt.Printf("%s  %-30s %5.0f%%  %s  (%s)\n",
			attempt.ID, attempt.BankDisplayName, attempt.Score,
			history.FormatDate(attempt.DateTaken),
			history.FormatTimeSpent(attempt.TimeSpent))
	}
	fmt.Printf("\nattempts: %d  average: %.1f%%  best: %.0f%%", h.TotalAttempts, h.AverageScore, h.BestScore)
	if h.FavoriteBank != "" {
		fmt.Printf("  favorite bank: %s", h.FavoriteBank)
	}
	fmt.Println()
	return nil
}

func showAttempt(ctx context.Context, store *history.Store, id string) error {
	attempt, err := store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s — %s\n", attempt.BankDisplayName, history.FormatDate(attempt.DateTaken))
	fmt.Printf("score: %.0f%% (%d of %d)  time: %s\n\n",
		attempt.Score, attempt.CorrectAnswers, attempt.TotalQuestions,
		history.FormatTimeSpent(attempt.TimeSpent))
	for i, answer := range attempt.AnswerHistory {
		mark := "✗"
		if answer.IsCorrect {
			mark = "✓"
		}
		fmt.Printf("%s %d. %s\n", mark, i+1, firstLine(answer.Question))
		fmt.Printf("    your answer:    %s\n", displayText(answer.SelectedAnswerText))
		fmt.Printf("    correct answer: %s\n", displayText(answer.CorrectAnswerText))
		if answer.Notes != "" {
			fmt.Printf("    note: %s\n", answer.Notes)
		}
	}
	return nil
}

func showNotes(ctx context.Context, store *history.Store, bankName string) error {
	notes, err := store.NotesForBank(ctx, bankName)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Println("No notes recorded for this bank.")
		return nil
	}
	for qid, note := range notes {
		fmt.Printf("question %d: %s\n", qid, note)
	}
	return nil
}
