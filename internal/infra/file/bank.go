package file

import (
	"context"
	"fmt"
	"os"

	"gigiceria-quiz/internal/domain"
	"gopkg.in/yaml.v3"
)

// BankLoader reads a question bank from a YAML file. The file holds a
// single bank; the requested id must match, so a misconfigured path fails
// loudly instead of serving the wrong content.
type BankLoader struct {
	path string
}

func NewBankLoader(path string) *BankLoader {
	return &BankLoader{path: path}
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return domain.Bank{}, fmt.Errorf("read bank file: %w", err)
	}
	var bank domain.Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("parse bank file: %w", err)
	}
	if bank.ID != bankID {
		return domain.Bank{}, fmt.Errorf("%w: file %s holds bank %q, want %q", domain.ErrBankNotFound, l.path, bank.ID, bankID)
	}
	if err := domain.ValidateQuestions(bank.Questions); err != nil {
		return domain.Bank{}, err
	}
	return bank, nil
}
