package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gigiceria-quiz/internal/app"
	"gigiceria-quiz/internal/bank"
	"gigiceria-quiz/internal/domain"
	"gigiceria-quiz/internal/infra/memory"
	"gigiceria-quiz/internal/scores"
)

func TestStartAlwaysRestartsFromZero(t *testing.T) {
	engine := newTestEngine(t, bank.Default().Questions)

	if err := engine.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	engine.SelectAnswer("Twice")
	if err := engine.Advance(context.Background()); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if snap := engine.Snapshot(); snap.QuestionIndex != 1 || snap.Score != 10 {
		t.Fatalf("expected index 1 score 10, got %+v", snap)
	}

	if err := engine.Start("Alice"); err != nil {
		t.Fatalf("restart: %v", err)
	}
	snap := engine.Snapshot()
	if snap.QuestionIndex != 0 || snap.Score != 0 || snap.Selected != "" || snap.Status != app.StatusInProgress {
		t.Fatalf("expected fresh session, got %+v", snap)
	}
	if snap.Remaining != 30 {
		t.Fatalf("expected full countdown, got %d", snap.Remaining)
	}
}

func TestStartRejectsInvalidName(t *testing.T) {
	engine := newTestEngine(t, bank.Default().Questions)

	for _, name := range []string{"", " ", "A", "x1y2", "this name is far too long to fit"} {
		if err := engine.Start(name); err == nil {
			t.Fatalf("expected validation error for %q", name)
		}
	}
	if snap := engine.Snapshot(); snap.Status != app.StatusNotStarted {
		t.Fatalf("failed start must not begin a session, got %+v", snap)
	}
}

func TestTimeoutRecordsUnanswered(t *testing.T) {
	questions := fourOptionQuestions(1)
	engine := newTestEngine(t, questions)
	ctx := context.Background()

	if err := engine.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 30; i++ {
		if err := engine.Tick(ctx); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	result, ok := engine.Result()
	if !ok {
		t.Fatalf("expected finished session")
	}
	if len(result.Transcript) != 1 {
		t.Fatalf("expected one answer record, got %d", len(result.Transcript))
	}
	record := result.Transcript[0]
	if record.IsCorrect || record.SelectedAnswer != "" {
		t.Fatalf("timeout must record an incorrect empty answer, got %+v", record)
	}
	if record.TimeUsed != 30 {
		t.Fatalf("expected full time used, got %d", record.TimeUsed)
	}
	if result.Score != 0 {
		t.Fatalf("expected zero score, got %d", result.Score)
	}
}

func TestSevenOfTenScoresSeventy(t *testing.T) {
	questions := bank.Default().Questions
	store := memory.NewStore()
	cfg := domain.ConfigFor(questions, 30*time.Second, 70)
	scoreLog := scores.NewLog(store, cfg.MaxScore)
	profiles := scores.NewProfileStore(store)
	engine, err := app.NewEngine(questions, cfg, scoreLog, profiles)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	ctx := context.Background()

	if err := engine.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i, q := range questions {
		if i < 7 {
			engine.SelectAnswer(q.CorrectAnswer)
		} else {
			engine.SelectAnswer(wrongOption(q))
		}
		if err := engine.Advance(ctx); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	result, ok := engine.Result()
	if !ok {
		t.Fatalf("expected finished session")
	}
	if result.Score != 70 || result.MaxScore != 100 {
		t.Fatalf("expected 70/100, got %d/%d", result.Score, result.MaxScore)
	}
	if result.Grade.Grade != "C" {
		t.Fatalf("expected grade C, got %s", result.Grade.Grade)
	}
	if result.CorrectCount != 7 {
		t.Fatalf("expected 7 correct, got %d", result.CorrectCount)
	}
	if !result.Saved {
		t.Fatalf("expected saved result")
	}

	top := scoreLog.TopScores(ctx, 1)
	if len(top) != 1 || top[0].Score != 70 || top[0].PlayerName != "Alice" {
		t.Fatalf("expected persisted entry, got %+v", top)
	}
	profile := profiles.Load(ctx)
	if profile.TotalQuizzes != 1 || profile.BestScore != 70 || profile.Name != "Alice" {
		t.Fatalf("expected updated profile, got %+v", profile)
	}
}

func TestAdvanceDropsConcurrentCall(t *testing.T) {
	questions := fourOptionQuestions(1)
	blocking := &blockingLog{release: make(chan struct{})}
	cfg := domain.ConfigFor(questions, 30*time.Second, 70)
	engine, err := app.NewEngine(questions, cfg, blocking, scores.NewProfileStore(memory.NewStore()))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	ctx := context.Background()

	if err := engine.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	engine.SelectAnswer(questions[0].CorrectAnswer)

	done := make(chan error, 1)
	go func() { done <- engine.Advance(ctx) }()

	// wait for the first advance to be in flight inside the score log write
	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&blocking.calls) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("first advance never reached the score log")
		}
		time.Sleep(time.Millisecond)
	}

	// second advance while the first is pending must be a silent no-op
	if err := engine.Advance(ctx); err != nil {
		t.Fatalf("concurrent advance: %v", err)
	}
	if err := engine.Tick(ctx); err != nil {
		t.Fatalf("concurrent tick: %v", err)
	}

	close(blocking.release)
	if err := <-done; err != nil {
		t.Fatalf("first advance: %v", err)
	}

	if calls := atomic.LoadInt32(&blocking.calls); calls != 1 {
		t.Fatalf("expected one score log append, got %d", calls)
	}
	result, ok := engine.Result()
	if !ok {
		t.Fatalf("expected finished session")
	}
	if len(result.Transcript) != 1 {
		t.Fatalf("expected exactly one answer record, got %d", len(result.Transcript))
	}
}

func TestRestartDuringFinalizeKeepsFreshSession(t *testing.T) {
	questions := fourOptionQuestions(1)
	blocking := &blockingLog{release: make(chan struct{})}
	cfg := domain.ConfigFor(questions, 30*time.Second, 70)
	engine, err := app.NewEngine(questions, cfg, blocking, scores.NewProfileStore(memory.NewStore()))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	ctx := context.Background()

	if err := engine.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	engine.SelectAnswer(questions[0].CorrectAnswer)

	done := make(chan error, 1)
	go func() { done <- engine.Advance(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&blocking.calls) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("advance never reached the score log")
		}
		time.Sleep(time.Millisecond)
	}

	// restart while Alice's attempt is still finalizing
	if err := engine.Start("Budi"); err != nil {
		t.Fatalf("restart: %v", err)
	}

	close(blocking.release)
	if err := <-done; err != nil {
		t.Fatalf("stale advance: %v", err)
	}

	snap := engine.Snapshot()
	if snap.Status != app.StatusInProgress || snap.PlayerName != "Budi" || snap.QuestionIndex != 0 || snap.Score != 0 {
		t.Fatalf("stale advance must not touch the fresh session, got %+v", snap)
	}
	if _, ok := engine.Result(); ok {
		t.Fatalf("stale result must not leak into the fresh session")
	}

	// the fresh session plays through normally
	engine.SelectAnswer(questions[0].CorrectAnswer)
	if err := engine.Advance(ctx); err != nil {
		t.Fatalf("advance: %v", err)
	}
	result, ok := engine.Result()
	if !ok {
		t.Fatalf("expected finished session")
	}
	if result.PlayerName != "Budi" {
		t.Fatalf("expected Budi's result, got %+v", result)
	}
}

func TestPersistFailureStillFinishes(t *testing.T) {
	questions := fourOptionQuestions(1)
	cfg := domain.ConfigFor(questions, 30*time.Second, 70)
	store := failingStore{}
	engine, err := app.NewEngine(questions, cfg, scores.NewLog(store, cfg.MaxScore), scores.NewProfileStore(store))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	ctx := context.Background()

	if err := engine.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	engine.SelectAnswer(questions[0].CorrectAnswer)

	warn := engine.Advance(ctx)
	if !errors.Is(warn, domain.ErrScoreNotSaved) {
		t.Fatalf("expected storage warning, got %v", warn)
	}

	result, ok := engine.Result()
	if !ok {
		t.Fatalf("session must finish despite the failed write")
	}
	if result.Saved {
		t.Fatalf("expected unsaved result")
	}
	if result.Score != questions[0].Points {
		t.Fatalf("in-memory result must stay authoritative, got %d", result.Score)
	}
}

func TestSelectAnswerIgnoredOutsideSession(t *testing.T) {
	engine := newTestEngine(t, bank.Default().Questions)

	engine.SelectAnswer("Twice")
	if snap := engine.Snapshot(); snap.Selected != "" {
		t.Fatalf("selection before start must be ignored, got %+v", snap)
	}

	if err := engine.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	engine.SelectAnswer("Once")
	engine.SelectAnswer("Twice") // last selection before advance wins
	if snap := engine.Snapshot(); snap.Selected != "Twice" {
		t.Fatalf("expected last selection to win, got %q", snap.Selected)
	}
}

func TestResetReturnsToNotStarted(t *testing.T) {
	engine := newTestEngine(t, bank.Default().Questions)
	ctx := context.Background()

	if err := engine.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	engine.SelectAnswer("Twice")
	if err := engine.Advance(ctx); err != nil {
		t.Fatalf("advance: %v", err)
	}

	engine.Reset()
	snap := engine.Snapshot()
	if snap.Status != app.StatusNotStarted || snap.Score != 0 || snap.QuestionIndex != 0 {
		t.Fatalf("expected discarded session, got %+v", snap)
	}
	if _, ok := engine.Result(); ok {
		t.Fatalf("reset must drop any result")
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	engine := newTestEngine(t, bank.Default().Questions)

	updates, cancel := engine.Subscribe()
	defer cancel()
	<-updates // initial snapshot

	if err := engine.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := <-updates
	if snap.Status != app.StatusInProgress || snap.QuestionIndex != 0 {
		t.Fatalf("expected in-progress snapshot, got %+v", snap)
	}
}

func newTestEngine(t *testing.T, questions []domain.Question) *app.Engine {
	t.Helper()
	store := memory.NewStore()
	cfg := domain.ConfigFor(questions, 30*time.Second, 70)
	engine, err := app.NewEngine(questions, cfg, scores.NewLog(store, cfg.MaxScore), scores.NewProfileStore(store))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return engine
}

func fourOptionQuestions(n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, domain.Question{
			ID:            i,
			Question:      fmt.Sprintf("Question %d", i),
			Options:       []string{"red", "green", "blue", "yellow"},
			CorrectAnswer: "green",
			Explanation:   "green is always right here",
			Points:        10,
			Difficulty:    domain.DifficultyEasy,
		})
	}
	return questions
}

func wrongOption(q domain.Question) string {
	for _, opt := range q.Options {
		if opt != q.CorrectAnswer {
			return opt
		}
	}
	return ""
}

type blockingLog struct {
	release chan struct{}
	calls   int32
}

func (l *blockingLog) Append(_ context.Context, playerName string, score int) (domain.ScoreEntry, error) {
	atomic.AddInt32(&l.calls, 1)
	<-l.release
	return domain.ScoreEntry{ID: "blocked", PlayerName: playerName, Score: score}, nil
}

// failingStore is a kv.Store whose writes always fail.
type failingStore struct{}

func (failingStore) Get(context.Context, string, any) bool { return false }
func (failingStore) Set(context.Context, string, any) bool { return false }
func (failingStore) Remove(context.Context, string) bool   { return false }
