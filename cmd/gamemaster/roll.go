package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gamemaster/internal/dice"
)

var (
	rollRoller       string
	rollPurpose      string
	rollAdvantage    bool
	rollDisadvantage bool
)

var rollCmd = &cobra.Command{
	Use:   "roll <notation>",
	Short: "Resolve a dice notation like 2d6+3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		result, err := a.dice.Roll(&dice.RollInput{
			Notation:     args[0],
			Purpose:      rollPurpose,
			Roller:       rollRoller,
			Advantage:    rollAdvantage,
			Disadvantage: rollDisadvantage,
		})
		if err != nil {
			return err
		}

		a.record(ctx, result)
		fmt.Println(dice.FormatResult(result))
		return nil
	},
}

func init() {
	rollCmd.Flags().StringVar(&rollRoller, "roller", "dm", "who is rolling")
	rollCmd.Flags().StringVar(&rollPurpose, "purpose", "", "what the roll decides")
	rollCmd.Flags().BoolVar(&rollAdvantage, "advantage", false, "roll a single d20 twice, keep the higher")
	rollCmd.Flags().BoolVar(&rollDisadvantage, "disadvantage", false, "roll a single d20 twice, keep the lower")
}
