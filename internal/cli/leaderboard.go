package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewLeaderboardCmd builds the subcommand that prints ranked scores.
func NewLeaderboardCmd(configPath *string) *cobra.Command {
	var (
		limit  int
		player string
	)
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the local leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.cleanup()

			if player != "" {
				return printPersonal(cmd.Context(), rt, player)
			}
			printTop(cmd.Context(), rt, limit)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of entries to show")
	cmd.Flags().StringVar(&player, "player", "", "show one player's scores with their global rank")
	return cmd
}

func printTop(ctx context.Context, rt *runtime, limit int) {
	ranked := rt.leaderboard.AllRanked(ctx, limit)
	if len(ranked) == 0 {
		fmt.Println("No scores yet. Play a quiz first!")
		return
	}
	fmt.Println("🏆 Leaderboard")
	for _, entry := range ranked {
		fmt.Printf("  %s %2d. %-20s %4d pts (%d%%)  %s\n", rankEmoji(entry.Rank), entry.Rank, entry.PlayerName, entry.Score, entry.Percent, entry.Date)
	}

	stats := rt.leaderboard.Stats(ctx)
	fmt.Printf("\n%d players, %d attempts, average %d, best %d\n",
		stats.TotalParticipants, stats.TotalAttempts, stats.AverageScore, stats.HighestScore)

	profile := rt.profiles.Load(ctx)
	if profile.TotalQuizzes > 0 {
		fmt.Printf("This device: %s, %d quizzes, best %d\n", profile.Name, profile.TotalQuizzes, profile.BestScore)
	}
}

func printPersonal(ctx context.Context, rt *runtime, player string) error {
	ranked, err := rt.leaderboard.PersonalRanked(ctx, player)
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		fmt.Printf("No scores for %s yet.\n", player)
		return nil
	}
	fmt.Printf("Scores for %s (rank is global):\n", player)
	for _, entry := range ranked {
		fmt.Printf("  #%d  %4d pts (%d%%)  %s\n", entry.Rank, entry.Score, entry.Percent, entry.Date)
	}
	return nil
}

func rankEmoji(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "🏅"
	}
}

// printLeaderboard is shared with the play command's post-quiz summary.
func printLeaderboard(ctx context.Context, rt *runtime) {
	fmt.Println()
	printTop(ctx, rt, 10)
}
