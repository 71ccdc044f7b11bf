package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gamemaster/internal/orchestrators/world"
)

var hpCmd = &cobra.Command{
	Use:   "hp <entity> <delta>",
	Short: "Apply damage (negative) or healing (positive) to an entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		delta, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("delta must be an integer, got %q", args[1])
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		out, err := a.world.UpdateHP(ctx, &world.UpdateHPInput{
			EntityID: args[0],
			Delta:    delta,
		})
		if err != nil {
			return err
		}
		if err := a.save(ctx); err != nil {
			return err
		}

		line := fmt.Sprintf("%s: %d/%d hp", out.EntityID, out.HP, out.MaxHP)
		if out.Unconscious {
			line += " (unconscious)"
		}
		fmt.Println(line)
		return nil
	},
}
