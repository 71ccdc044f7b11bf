package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gamemaster/internal/orchestrators/world"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Read and write the game document",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the whole game document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		out, err := a.world.GetState(cmd.Context(), &world.GetStateInput{})
		if err != nil {
			return err
		}
		return printJSON(out.State)
	},
}

var stateGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Read a dot-path, e.g. characters.vex.hp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		out, err := a.world.GetValue(cmd.Context(), &world.GetValueInput{Path: args[0]})
		if err != nil {
			return err
		}
		return printJSON(out.Value)
	},
}

var stateSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Write a dot-path; the value is JSON, or a plain string when it does not parse",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		// "9" and "true" are JSON scalars; "cragmaw_hideout" is just a string.
		var value any
		if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
			value = args[1]
		}

		if _, err := a.world.SetValue(ctx, &world.SetValueInput{
			Path:  args[0],
			Value: value,
		}); err != nil {
			return err
		}
		if err := a.save(ctx); err != nil {
			return err
		}

		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateGetCmd)
	stateCmd.AddCommand(stateSetCmd)
}
