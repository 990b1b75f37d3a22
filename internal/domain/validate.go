package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidatePlayerName checks the trimmed name against the rules the UI
// enforces before a quiz can start: 2-20 characters, letters and spaces only.
func ValidatePlayerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameEmpty
	}
	if len([]rune(trimmed)) < 2 {
		return ErrNameTooShort
	}
	if len([]rune(trimmed)) > 20 {
		return ErrNameTooLong
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && r != ' ' {
			return ErrNameInvalid
		}
	}
	return nil
}

// ValidateQuestions checks the content invariants of a question set:
// four unique options per question, the correct answer among them, and
// positive points. Returns the first violation wrapped with the question id.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrBankInvalid)
	}
	for _, q := range questions {
		if len(q.Options) != 4 {
			return fmt.Errorf("%w: question %d has %d options, want 4", ErrBankInvalid, q.ID, len(q.Options))
		}
		seen := make(map[string]struct{}, len(q.Options))
		correct := false
		for _, opt := range q.Options {
			if _, dup := seen[opt]; dup {
				return fmt.Errorf("%w: question %d has duplicate option %q", ErrBankInvalid, q.ID, opt)
			}
			seen[opt] = struct{}{}
			if opt == q.CorrectAnswer {
				correct = true
			}
		}
		if !correct {
			return fmt.Errorf("%w: question %d correct answer %q not among options", ErrBankInvalid, q.ID, q.CorrectAnswer)
		}
		if q.Points <= 0 {
			return fmt.Errorf("%w: question %d has non-positive points", ErrBankInvalid, q.ID)
		}
	}
	return nil
}
