package app

import (
	"context"

	"gigiceria-quiz/internal/domain"
)

// ScoreSource is the read side of the score log the leaderboard composes.
type ScoreSource interface {
	All(ctx context.Context) []domain.ScoreEntry
	TopScores(ctx context.Context, limit int) []domain.ScoreEntry
	ForPlayer(ctx context.Context, playerName string) []domain.ScoreEntry
	RankOf(entry domain.ScoreEntry, within []domain.ScoreEntry) (int, error)
}

// Leaderboard derives the ranked and aggregate views from the score log.
type Leaderboard struct {
	source   ScoreSource
	maxScore int
}

func NewLeaderboard(source ScoreSource, maxScore int) *Leaderboard {
	return &Leaderboard{source: source, maxScore: maxScore}
}

// AllRanked returns the top entries annotated with rank and percentage.
func (l *Leaderboard) AllRanked(ctx context.Context, limit int) []domain.RankedEntry {
	top := l.source.TopScores(ctx, limit)
	ranked := make([]domain.RankedEntry, 0, len(top))
	for i, entry := range top {
		ranked = append(ranked, domain.RankedEntry{
			ScoreEntry: entry,
			Rank:       i + 1,
			Percent:    percentOf(entry.Score, l.maxScore),
		})
	}
	return ranked
}

// PersonalRanked returns the named player's entries, each carrying its
// rank within the full log rather than the personal subset, so the view
// shows true global standing.
func (l *Leaderboard) PersonalRanked(ctx context.Context, playerName string) ([]domain.RankedEntry, error) {
	personal := l.source.ForPlayer(ctx, playerName)
	full := l.source.All(ctx)
	ranked := make([]domain.RankedEntry, 0, len(personal))
	for _, entry := range personal {
		rank, err := l.source.RankOf(entry, full)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, domain.RankedEntry{
			ScoreEntry: entry,
			Rank:       rank,
			Percent:    percentOf(entry.Score, l.maxScore),
		})
	}
	return ranked, nil
}

// Stats aggregates the whole log; all zeros when the log is empty.
func (l *Leaderboard) Stats(ctx context.Context) domain.LeaderboardStats {
	entries := l.source.All(ctx)
	stats := domain.LeaderboardStats{TotalAttempts: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	names := make(map[string]struct{}, len(entries))
	total := 0
	for _, entry := range entries {
		names[entry.PlayerName] = struct{}{}
		total += entry.Score
		if entry.Score > stats.HighestScore {
			stats.HighestScore = entry.Score
		}
	}
	stats.TotalParticipants = len(names)
	stats.AverageScore = int(float64(total)/float64(len(entries)) + 0.5)
	return stats
}
