// Package postgres loads question banks stored as JSONB rows.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-trainer/internal/domain"
)

// BankLoader loads bank rows from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, name string) (domain.Bank, error) {
	var displayName string
	var raw []byte
	err := l.pool.QueryRow(ctx,
		`SELECT display_name, data FROM banks WHERE name=$1`, name,
	).Scan(&displayName, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Bank{}, domain.ErrBankNotFound
		}
		return domain.Bank{}, fmt.Errorf("load bank: %w", err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return domain.Bank{}, fmt.Errorf("unmarshal bank: %w", err)
	}
	return domain.Bank{
		QuestionBank: domain.QuestionBank{Name: name, DisplayName: displayName},
		Questions:    questions,
	}, nil
}
