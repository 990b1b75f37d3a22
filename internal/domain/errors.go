package domain

import "errors"

var (
	// ErrNameEmpty is returned when the player name is empty after trimming.
	ErrNameEmpty = errors.New("player name must not be empty")
	// ErrNameTooShort is returned for names below two characters.
	ErrNameTooShort = errors.New("player name must be at least 2 characters")
	// ErrNameTooLong is returned for names above twenty characters.
	ErrNameTooLong = errors.New("player name must be at most 20 characters")
	// ErrNameInvalid is returned for names with characters outside letters and spaces.
	ErrNameInvalid = errors.New("player name may only contain letters and spaces")
	// ErrScoreOutOfRange is returned when a score falls outside [0, maxScore].
	ErrScoreOutOfRange = errors.New("score out of range")
	// ErrEntryNotFound indicates a rank lookup referenced an id absent from the set.
	ErrEntryNotFound = errors.New("score entry not found")
	// ErrInvalidMaxScore indicates the grading policy was given a non-positive max score.
	ErrInvalidMaxScore = errors.New("max score must be positive")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrBankInvalid indicates the question bank violates a content invariant.
	ErrBankInvalid = errors.New("question bank invalid")
	// ErrScoreNotSaved wraps persistence failures during finalization; the
	// in-memory result is still authoritative, callers should warn, not abort.
	ErrScoreNotSaved = errors.New("result could not be saved")
)
