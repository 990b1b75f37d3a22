// Package app contains the quiz use cases: the session state machine,
// the grading policy, and the leaderboard queries.
package app

import (
	"context"
	"sync"
	"time"

	"gigiceria-quiz/internal/domain"
)

// Status enumerates the session states. Every status has a defined view:
// NotStarted renders the start screen, InProgress the current question,
// Finished the result.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// ScoreLog persists finalized attempts (see internal/scores).
type ScoreLog interface {
	Append(ctx context.Context, playerName string, score int) (domain.ScoreEntry, error)
}

// ProfileStore folds attempts into the per-device player profile.
type ProfileStore interface {
	RecordAttempt(ctx context.Context, name string, score int) (domain.PlayerProfile, error)
}

// Snapshot is what the rendering layer observes. It owns no transition
// logic; all mutation goes through the engine methods.
type Snapshot struct {
	Status         Status   `json:"status"`
	PlayerName     string   `json:"playerName"`
	QuestionIndex  int      `json:"questionIndex"`
	TotalQuestions int      `json:"totalQuestions"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	Remaining      int      `json:"remaining"` // seconds left on the current question
	Score          int      `json:"score"`
	Selected       string   `json:"selected"`
	CanAdvance     bool     `json:"canAdvance"` // an answer is selected and no advance is in flight
}

// Result is the finalized outcome of a session.
type Result struct {
	PlayerName   string                `json:"playerName"`
	Score        int                   `json:"score"`
	MaxScore     int                   `json:"maxScore"`
	Grade        domain.Grade          `json:"grade"`
	CorrectCount int                   `json:"correctCount"`
	Transcript   []domain.AnswerRecord `json:"transcript"`
	Entry        domain.ScoreEntry     `json:"entry"`
	Saved        bool                  `json:"saved"` // false when the score log write was lost
}

// Engine drives one quiz attempt: question sequencing, the per-question
// countdown, answer capture, scoring, and finalization into the score log
// and player profile. A single timer owned by the caller invokes Tick once
// per elapsed second; everything else is caller-invoked.
type Engine struct {
	questions []domain.Question
	cfg       domain.QuizConfig
	log       ScoreLog
	profiles  ProfileStore

	mu          sync.Mutex
	status      Status
	gen         uint64 // bumped by Start and Reset; stale advances check it
	playerName  string
	index       int
	remaining   int
	score       int
	selected    string
	transcript  []domain.AnswerRecord
	advancing   bool
	result      *Result
	subscribers map[chan Snapshot]struct{}
}

func NewEngine(questions []domain.Question, cfg domain.QuizConfig, log ScoreLog, profiles ProfileStore) (*Engine, error) {
	if err := domain.ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return &Engine{
		questions:   questions,
		cfg:         cfg,
		log:         log,
		profiles:    profiles,
		status:      StatusNotStarted,
		subscribers: make(map[chan Snapshot]struct{}),
	}, nil
}

// Start begins a fresh session for the named player. It always restarts
// from question zero; there is no resumption of a stale session.
func (e *Engine) Start(playerName string) error {
	if err := domain.ValidatePlayerName(playerName); err != nil {
		return err
	}

	e.mu.Lock()
	e.status = StatusInProgress
	e.gen++
	e.playerName = playerName
	e.index = 0
	e.remaining = e.secondsPerQuestion()
	e.score = 0
	e.selected = ""
	e.transcript = nil
	e.advancing = false
	e.result = nil
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.broadcast(snap)
	return nil
}

// SelectAnswer records the player's current choice. Silently ignored
// outside an in-progress question or while an advance is in flight.
// Repeated calls overwrite; the last selection before advance wins.
func (e *Engine) SelectAnswer(option string) {
	e.mu.Lock()
	if e.status != StatusInProgress || e.advancing {
		e.mu.Unlock()
		return
	}
	e.selected = option
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.broadcast(snap)
}

// Tick consumes one second of the current question's countdown. When the
// countdown reaches zero the engine advances with whatever is selected,
// exactly as if the player had pressed next.
func (e *Engine) Tick(ctx context.Context) error {
	e.mu.Lock()
	if e.status != StatusInProgress || e.advancing {
		e.mu.Unlock()
		return nil
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining > 0 {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		e.broadcast(snap)
		return nil
	}
	e.advancing = true
	gen := e.gen
	e.mu.Unlock()

	return e.completeAdvance(ctx, gen)
}

// Advance moves past the current question. At most one advance can be in
// flight: a second call while the first is pending is dropped, so the
// timer expiring and the player pressing next near-simultaneously produce
// exactly one answer record.
func (e *Engine) Advance(ctx context.Context) error {
	e.mu.Lock()
	if e.status != StatusInProgress || e.advancing {
		e.mu.Unlock()
		return nil
	}
	e.advancing = true
	gen := e.gen
	e.mu.Unlock()

	return e.completeAdvance(ctx, gen)
}

// completeAdvance runs the advance step. The caller must have set
// advancing while holding the lock; the guard clears here whether or not
// finalization persists, so the next tick or user action can proceed.
// gen identifies the session the advance belongs to: if Start or Reset
// replaced the session in the meantime, the stale advance is dropped
// without touching the fresh state.
func (e *Engine) completeAdvance(ctx context.Context, gen uint64) error {
	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		return nil
	}
	question := e.questions[e.index]
	record := domain.AnswerRecord{
		QuestionID:     question.ID,
		Question:       question.Question,
		SelectedAnswer: e.selected,
		CorrectAnswer:  question.CorrectAnswer,
		IsCorrect:      e.selected == question.CorrectAnswer, // empty selection is never correct
		TimeUsed:       e.secondsPerQuestion() - e.remaining,
	}
	e.transcript = append(e.transcript, record)
	if record.IsCorrect {
		e.score += question.Points
	}

	last := e.index == len(e.questions)-1
	playerName := e.playerName
	finalScore := e.score
	var transcript []domain.AnswerRecord
	if last {
		e.status = StatusFinished
		transcript = make([]domain.AnswerRecord, len(e.transcript))
		copy(transcript, e.transcript)
	} else {
		e.index++
		e.remaining = e.secondsPerQuestion()
		e.selected = ""
	}
	e.mu.Unlock()

	var result Result
	var warn error
	if last {
		result, warn = e.finalize(ctx, playerName, finalScore, transcript)
	}

	e.mu.Lock()
	if e.gen != gen {
		// the attempt is persisted, but its in-memory result belongs to
		// a session that no longer exists
		e.mu.Unlock()
		return warn
	}
	if last {
		e.result = &result
	}
	e.advancing = false
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.broadcast(snap)
	return warn
}

// finalize writes through the score log and player profile. The in-memory
// result stays authoritative when either write fails; the returned error
// wraps domain.ErrScoreNotSaved and is a warning, not a failure.
func (e *Engine) finalize(ctx context.Context, playerName string, score int, transcript []domain.AnswerRecord) (Result, error) {
	grade, err := GradeFor(score, e.cfg.MaxScore)
	if err != nil {
		return Result{}, err
	}

	correct := 0
	for _, record := range transcript {
		if record.IsCorrect {
			correct++
		}
	}
	result := Result{
		PlayerName:   playerName,
		Score:        score,
		MaxScore:     e.cfg.MaxScore,
		Grade:        grade,
		CorrectCount: correct,
		Transcript:   transcript,
	}

	entry, warn := e.log.Append(ctx, playerName, score)
	result.Entry = entry
	result.Saved = warn == nil

	if _, err := e.profiles.RecordAttempt(ctx, playerName, score); err != nil && warn == nil {
		warn = err
	}
	return result, warn
}

// Reset discards all session state and returns to NotStarted. Persisted
// history is untouched.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.status = StatusNotStarted
	e.gen++
	e.playerName = ""
	e.index = 0
	e.remaining = 0
	e.score = 0
	e.selected = ""
	e.transcript = nil
	e.advancing = false
	e.result = nil
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.broadcast(snap)
}

// Snapshot returns the current view of the session.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Result returns the finalized result, if the session has finished.
func (e *Engine) Result() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}

// Config returns the derived quiz configuration.
func (e *Engine) Config() domain.QuizConfig {
	return e.cfg
}

// Questions returns the loaded question set in play order.
func (e *Engine) Questions() []domain.Question {
	return e.questions
}

// Subscribe returns a channel receiving snapshot updates. The caller must
// invoke the returned cancel function to avoid leaks.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	initial := e.snapshotLocked()
	e.mu.Unlock()

	ch <- initial

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

func (e *Engine) broadcast(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.subscribers {
		select {
		case ch <- snap:
		default:
			// drop the stale update so a slow consumer cannot block the engine
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:         e.status,
		PlayerName:     e.playerName,
		QuestionIndex:  e.index,
		TotalQuestions: len(e.questions),
		Remaining:      e.remaining,
		Score:          e.score,
		Selected:       e.selected,
		CanAdvance:     e.status == StatusInProgress && e.selected != "" && !e.advancing,
	}
	if e.status == StatusInProgress {
		question := e.questions[e.index]
		snap.Question = question.Question
		snap.Options = question.Options
	}
	return snap
}

func (e *Engine) secondsPerQuestion() int {
	return int(e.cfg.TimePerQuestion / time.Second)
}
