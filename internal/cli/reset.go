package cli

import (
	"fmt"

	"gigiceria-quiz/internal/kv"
	"github.com/spf13/cobra"
)

// NewResetCmd builds the subcommand that clears persisted history.
func NewResetCmd(configPath *string) *cobra.Command {
	var (
		scoresOnly  bool
		profileOnly bool
		yes         bool
	)
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the score log and/or player profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes; this is irreversible")
			}
			rt, err := buildRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.cleanup()

			all := !scoresOnly && !profileOnly
			if all || scoresOnly {
				if rt.scoreLog.Clear(cmd.Context()) {
					fmt.Println("Score log cleared.")
				} else {
					fmt.Println("Score log could not be cleared.")
				}
			}
			if all || profileOnly {
				if rt.profiles.Clear(cmd.Context()) {
					fmt.Println("Player profile cleared.")
				} else {
					fmt.Println("Player profile could not be cleared.")
				}
			}
			if all {
				rt.store.Remove(cmd.Context(), kv.SettingsKey)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&scoresOnly, "scores", false, "clear only the score log")
	cmd.Flags().BoolVar(&profileOnly, "profile", false, "clear only the player profile")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the irreversible clear")
	return cmd
}
