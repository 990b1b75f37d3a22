package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gigiceria-quiz/internal/app"
	"github.com/spf13/cobra"
)

// NewPlayCmd builds the subcommand that runs one interactive quiz session.
func NewPlayCmd(configPath *string) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take the quiz on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "player name (2-20 letters and spaces)")
	return cmd
}

func runPlay(ctx context.Context, configPath, name string) error {
	rt, err := buildRuntime(ctx, configPath)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	reader := bufio.NewReader(os.Stdin)
	if name == "" {
		fmt.Print("Your name: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		name = strings.TrimSpace(line)
	}

	engine, err := rt.newEngine()
	if err != nil {
		return err
	}
	if err := engine.Start(name); err != nil {
		return err
	}

	cfg := engine.Config()
	fmt.Printf("\n🎯 Dental Health Quiz\n")
	fmt.Printf("%d questions, %d seconds each, %d points max.\n", cfg.TotalQuestions, int(cfg.TimePerQuestion/time.Second), cfg.MaxScore)
	fmt.Println("Answer with 1-4, press n for next, q to quit.")

	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			lines <- strings.TrimSpace(line)
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastIndex := -1
	for {
		snap := engine.Snapshot()
		if snap.Status == app.StatusFinished {
			break
		}
		if snap.QuestionIndex != lastIndex {
			lastIndex = snap.QuestionIndex
			printQuestion(snap)
		}

		select {
		case <-ticker.C:
			if warn := engine.Tick(ctx); warn != nil {
				log.Printf("warning: %v", warn)
			}
			after := engine.Snapshot()
			if after.Status == app.StatusInProgress && after.QuestionIndex == lastIndex && after.Remaining > 0 && after.Remaining <= 5 {
				fmt.Printf("⏰ %d seconds left!\n", after.Remaining)
			}
		case line, ok := <-lines:
			if !ok {
				engine.Reset()
				return nil
			}
			switch {
			case line == "q":
				engine.Reset()
				fmt.Println("Quiz abandoned; nothing was saved.")
				return nil
			case line == "n" || line == "":
				if !snap.CanAdvance {
					fmt.Println("Pick an option first (1-4).")
					continue
				}
				if warn := engine.Advance(ctx); warn != nil {
					log.Printf("warning: %v", warn)
				}
			default:
				choice, err := strconv.Atoi(line)
				if err != nil || choice < 1 || choice > len(snap.Options) {
					fmt.Println("Type 1-4 to answer, n for next, q to quit.")
					continue
				}
				engine.SelectAnswer(snap.Options[choice-1])
				fmt.Printf("Selected: %s\n", snap.Options[choice-1])
			}
		case <-ctx.Done():
			engine.Reset()
			return ctx.Err()
		}
	}

	result, ok := engine.Result()
	if !ok {
		return fmt.Errorf("session finished without a result")
	}
	printResult(result)
	printLeaderboard(ctx, rt)
	return nil
}

func printQuestion(snap app.Snapshot) {
	fmt.Printf("\nQuestion %d/%d (score %d, %ds on the clock)\n", snap.QuestionIndex+1, snap.TotalQuestions, snap.Score, snap.Remaining)
	fmt.Println(snap.Question)
	for i, option := range snap.Options {
		fmt.Printf("  %d) %s\n", i+1, option)
	}
}

func printResult(result app.Result) {
	fmt.Printf("\n%s Quiz finished!\n", result.Grade.Emoji)
	fmt.Printf("%s scored %d of %d (%d%%), grade %s\n", result.PlayerName, result.Score, result.MaxScore, result.Grade.Percentage, result.Grade.Grade)
	fmt.Println(result.Grade.Message)
	if !result.Saved {
		fmt.Println("⚠ The score could not be saved to the leaderboard.")
	}

	fmt.Println("\nAnswer review:")
	for i, record := range result.Transcript {
		mark := "✗"
		if record.IsCorrect {
			mark = "✓"
		}
		answer := record.SelectedAnswer
		if answer == "" {
			answer = "(no answer)"
		}
		fmt.Printf("  %s %d. %s: %s", mark, i+1, record.Question, answer)
		if !record.IsCorrect {
			fmt.Printf(" (correct: %s)", record.CorrectAnswer)
		}
		fmt.Println()
	}
}
