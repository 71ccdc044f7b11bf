package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gamemaster/internal/dice"
	"github.com/KirkDiggler/gamemaster/internal/errors"
	"github.com/KirkDiggler/gamemaster/internal/repositories/rolllog"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the roll audit log (redis only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if a.rollLog == nil {
			return fmt.Errorf("the roll log needs redis; run with --redis or set GAMEMASTER_REDIS_ADDR")
		}

		out, err := a.rollLog.Get(cmd.Context(), rolllog.GetInput{GameID: a.gameID})
		if err != nil {
			if errors.IsNotFound(err) {
				fmt.Println("No rolls recorded yet.")
				return nil
			}
			return err
		}

		for _, entry := range out.Log.Entries {
			fmt.Printf("%s  %s\n", entry.RolledAt.Format("15:04:05"), dice.FormatResult(entry.Result))
		}
		return nil
	},
}

var logClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the roll audit log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if a.rollLog == nil {
			return fmt.Errorf("the roll log needs redis; run with --redis or set GAMEMASTER_REDIS_ADDR")
		}

		out, err := a.rollLog.Delete(cmd.Context(), rolllog.DeleteInput{GameID: a.gameID})
		if err != nil {
			return err
		}

		fmt.Printf("Deleted %d entries.\n", out.EntriesDeleted)
		return nil
	},
}

func init() {
	logCmd.AddCommand(logClearCmd)
}
