// Package bank supplies question-bank content to sessions. Banks are
// pre-authored, read-only data; loaders only materialize them.
package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"quiz-trainer/internal/domain"
)

// Loader fetches one bank's content from a backing source.
type Loader interface {
	LoadBank(ctx context.Context, name string) (domain.Bank, error)
}

// FileLoader reads banks from JSON files in a directory, one file per bank,
// located through the configured descriptors.
type FileLoader struct {
	dir   string
	banks map[string]domain.QuestionBank
	order []domain.QuestionBank
}

func NewFileLoader(dir string, banks []domain.QuestionBank) *FileLoader {
	byName := make(map[string]domain.QuestionBank, len(banks))
	for _, b := range banks {
		byName[b.Name] = b
	}
	return &FileLoader{dir: dir, banks: byName, order: banks}
}

// Banks lists the configured descriptors in configuration order.
func (l *FileLoader) Banks() []domain.QuestionBank {
	return l.order
}

func (l *FileLoader) LoadBank(_ context.Context, name string) (domain.Bank, error) {
	descriptor, ok := l.banks[name]
	if !ok {
		return domain.Bank{}, domain.ErrBankNotFound
	}
	data, err := os.ReadFile(filepath.Join(l.dir, descriptor.FileName))
	if err != nil {
		return domain.Bank{}, fmt.Errorf("read bank %q: %w", name, err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return domain.Bank{}, fmt.Errorf("decode bank %q: %w", name, err)
	}
	return domain.Bank{QuestionBank: descriptor, Questions: questions}, nil
}

// StaticLoader serves banks from an in-memory map (tests and demos).
type StaticLoader struct {
	banks map[string]domain.Bank
}

func NewStaticLoader(banks map[string]domain.Bank) *StaticLoader {
	return &StaticLoader{banks: banks}
}

func (l *StaticLoader) LoadBank(_ context.Context, name string) (domain.Bank, error) {
	if b, ok := l.banks[name]; ok {
		return b, nil
	}
	return domain.Bank{}, domain.ErrBankNotFound
}
