// Package scores owns the persisted quiz history: the append-only score
// log and the per-device player profile, both stored whole under fixed
// keys in a kv.Store.
package scores

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"gigiceria-quiz/internal/domain"
	"gigiceria-quiz/internal/kv"
)

// Log is the append-only record of finalized quiz attempts. Entries are
// never mutated or deleted individually; the whole log is re-serialized
// on every append and may only be cleared as a unit.
type Log struct {
	store    kv.Store
	maxScore int
	now      func() time.Time
	rnd      *rand.Rand
}

func NewLog(store kv.Store, maxScore int) *Log {
	return &Log{
		store:    store,
		maxScore: maxScore,
		now:      time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewLogWithClock is test-only for deterministic ids and timestamps.
func NewLogWithClock(store kv.Store, maxScore int, now func() time.Time) *Log {
	l := NewLog(store, maxScore)
	l.now = now
	return l
}

// Append validates and persists a new attempt. The log accepts any
// non-empty name up to 20 characters; the stricter charset rule applies
// at session start, not here. The returned entry is authoritative even
// when persistence fails; in that case the error wraps
// domain.ErrScoreNotSaved and callers should warn rather than abort.
func (l *Log) Append(ctx context.Context, playerName string, score int) (domain.ScoreEntry, error) {
	trimmed := strings.TrimSpace(playerName)
	if trimmed == "" {
		return domain.ScoreEntry{}, domain.ErrNameEmpty
	}
	if len([]rune(trimmed)) > 20 {
		return domain.ScoreEntry{}, domain.ErrNameTooLong
	}
	if score < 0 || score > l.maxScore {
		return domain.ScoreEntry{}, fmt.Errorf("%w: %d not in [0, %d]", domain.ErrScoreOutOfRange, score, l.maxScore)
	}

	now := l.now()
	entry := domain.ScoreEntry{
		ID:         l.newID(now),
		PlayerName: trimmed,
		Score:      score,
		CreatedAt:  now,
		Date:       now.Format("2 Jan 2006 15:04"),
	}

	entries := l.All(ctx)
	entries = append(entries, entry)
	if !l.store.Set(ctx, kv.ScoresKey, entries) {
		return entry, fmt.Errorf("%w: score log write failed", domain.ErrScoreNotSaved)
	}
	return entry, nil
}

// All returns the log in insertion order; an unreadable log reads as empty.
func (l *Log) All(ctx context.Context) []domain.ScoreEntry {
	var entries []domain.ScoreEntry
	l.store.Get(ctx, kv.ScoresKey, &entries)
	return entries
}

// TopScores returns up to limit entries, highest score first. Ties keep
// insertion order. The log itself is never mutated.
func (l *Log) TopScores(ctx context.Context, limit int) []domain.ScoreEntry {
	entries := sortedByScore(l.All(ctx))
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// ForPlayer returns all entries whose name matches exactly, highest first.
func (l *Log) ForPlayer(ctx context.Context, playerName string) []domain.ScoreEntry {
	var matched []domain.ScoreEntry
	for _, entry := range l.All(ctx) {
		if entry.PlayerName == playerName {
			matched = append(matched, entry)
		}
	}
	return sortedByScore(matched)
}

// Clear removes the whole log. Irreversible; confirmation is the caller's job.
func (l *Log) Clear(ctx context.Context) bool {
	return l.store.Remove(ctx, kv.ScoresKey)
}

// RankOf returns the 1-based position of entry within the given set when
// sorted highest score first (ties keep the set's relative order).
func (l *Log) RankOf(entry domain.ScoreEntry, within []domain.ScoreEntry) (int, error) {
	for i, candidate := range sortedByScore(within) {
		if candidate.ID == entry.ID {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: id %s", domain.ErrEntryNotFound, entry.ID)
}

// MaxScore reports the upper bound Append enforces.
func (l *Log) MaxScore() int {
	return l.maxScore
}

func (l *Log) newID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + strconv.FormatInt(l.rnd.Int63n(1<<31), 36)
}

func sortedByScore(entries []domain.ScoreEntry) []domain.ScoreEntry {
	sorted := make([]domain.ScoreEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}
