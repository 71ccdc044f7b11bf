package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gamemaster/internal/orchestrators/world"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Throw the game away and start over from the campaign defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		out, err := a.world.Reset(cmd.Context(), &world.ResetInput{})
		if err != nil {
			return err
		}

		fmt.Printf("Game %s reset to %s.\n", out.State.GameID, out.State.CurrentScene)
		return nil
	},
}
