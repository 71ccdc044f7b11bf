package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gamemaster/internal/entities"
	"github.com/KirkDiggler/gamemaster/internal/orchestrators/world"
)

var partyCmd = &cobra.Command{
	Use:   "party",
	Short: "Show the party's condition",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		out, err := a.world.PartyStatus(cmd.Context(), &world.PartyStatusInput{})
		if err != nil {
			return err
		}

		for _, member := range out.Members {
			fmt.Println(statusLine(member))
		}
		return nil
	},
}

var enemiesCmd = &cobra.Command{
	Use:   "enemies",
	Short: "List enemies still standing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		out, err := a.world.LivingEnemies(cmd.Context(), &world.LivingEnemiesInput{})
		if err != nil {
			return err
		}
		if len(out.Enemies) == 0 {
			fmt.Println("No enemies standing.")
			return nil
		}

		for _, enemy := range out.Enemies {
			fmt.Println(statusLine(enemy))
		}
		return nil
	},
}

func statusLine(e *entities.Entity) string {
	line := fmt.Sprintf("%-12s %s, %d/%d hp, AC %d", e.ID, e.Name, e.HP, e.MaxHP, e.AC)
	if len(e.Conditions) > 0 {
		line += fmt.Sprintf(" [%s]", strings.Join(e.Conditions, ", "))
	}
	return line
}
