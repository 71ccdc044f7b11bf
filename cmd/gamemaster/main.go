// Package main is the command-line surface of the gamemaster engine. Each
// invocation loads the game document, performs one operation, and persists
// any mutation before exiting.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	gameID   string
	stateDir string
	redisURL string
	seed     int64
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "gamemaster",
	Short: "Tabletop encounter engine",
	Long: `Gamemaster runs the mechanical side of a tabletop session: dice,
world state, combat scheduling, and scene progression. Narration stays with
the humans (or agents) driving it.`,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return setupLogging(logLevel)
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&gameID, "game", envOr("GAMEMASTER_GAME_ID", "lost-mines-001"), "game id to operate on")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", envOr("GAMEMASTER_STATE_DIR", "data"), "directory holding save files")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis", envOr("GAMEMASTER_REDIS_ADDR", ""), "redis address; when set, state and the roll log live in redis instead of files")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "seed for deterministic dice; 0 uses real entropy")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("GAMEMASTER_LOG_LEVEL", "warn"), "log level: debug, info, warn, error")

	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(hpCmd)
	rootCmd.AddCommand(flagCmd)
	rootCmd.AddCommand(combatCmd)
	rootCmd.AddCommand(sceneCmd)
	rootCmd.AddCommand(partyCmd)
	rootCmd.AddCommand(enemiesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(logCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupLogging(level string) error {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})))
	return nil
}
