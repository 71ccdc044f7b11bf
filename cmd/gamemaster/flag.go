package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gamemaster/internal/orchestrators/world"
)

var flagCmd = &cobra.Command{
	Use:   "flag",
	Short: "Read and set narrative progress flags",
}

var flagSetCmd = &cobra.Command{
	Use:   "set <name> [true|false]",
	Short: "Set a narrative flag, true when the value is omitted",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		value := true
		if len(args) == 2 {
			parsed, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("flag value must be true or false, got %q", args[1])
			}
			value = parsed
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		if _, err := a.world.SetFlag(ctx, &world.SetFlagInput{
			Name:  args[0],
			Value: value,
		}); err != nil {
			return err
		}
		if err := a.save(ctx); err != nil {
			return err
		}

		fmt.Printf("%s = %t\n", args[0], value)
		return nil
	},
}

var flagGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Read a narrative flag; flags never set read as false",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		out, err := a.world.GetFlag(cmd.Context(), &world.GetFlagInput{Name: args[0]})
		if err != nil {
			return err
		}

		fmt.Printf("%s = %t\n", args[0], out.Value)
		return nil
	},
}

func init() {
	flagCmd.AddCommand(flagSetCmd)
	flagCmd.AddCommand(flagGetCmd)
}
