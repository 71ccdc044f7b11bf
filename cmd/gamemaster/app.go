package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/gamemaster/internal/content"
	"github.com/KirkDiggler/gamemaster/internal/dice"
	"github.com/KirkDiggler/gamemaster/internal/entities"
	"github.com/KirkDiggler/gamemaster/internal/orchestrators/combat"
	"github.com/KirkDiggler/gamemaster/internal/orchestrators/world"
	"github.com/KirkDiggler/gamemaster/internal/pkg/clock"
	"github.com/KirkDiggler/gamemaster/internal/pkg/idgen"
	"github.com/KirkDiggler/gamemaster/internal/redis"
	"github.com/KirkDiggler/gamemaster/internal/repositories/gamestate"
	"github.com/KirkDiggler/gamemaster/internal/repositories/rolllog"
	"github.com/KirkDiggler/gamemaster/internal/scenes"
)

// app wires the engine stack for one CLI invocation. The roll log is nil
// unless redis is configured.
type app struct {
	gameID  string
	world   *world.Orchestrator
	dice    dice.Service
	combat  *combat.Orchestrator
	rollLog rolllog.Repository
	table   scenes.Table
}

// newApp builds the stack from the persistent flags and loads the game.
func newApp(ctx context.Context) (*app, error) {
	var (
		repo    gamestate.Repository
		rollLog rolllog.Repository
		err     error
	)

	if redisURL != "" {
		client, clientErr := redis.NewClient(redisURL, nil)
		if clientErr != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", clientErr)
		}
		repo, err = gamestate.NewRedis(&gamestate.RedisConfig{Client: client})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis state repository: %w", err)
		}
		rollLog, err = rolllog.NewRedisRepository(&rolllog.Config{
			Client: client,
			Clock:  clock.New(),
			IDGen:  idgen.NewPrefixed("roll-"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create roll log: %w", err)
		}
	} else {
		repo, err = gamestate.NewFile(&gamestate.FileConfig{Dir: stateDir})
		if err != nil {
			return nil, fmt.Errorf("failed to create file state repository: %w", err)
		}
	}

	worldSvc, err := world.New(&world.Config{
		Repo:     repo,
		Defaults: content.NewState(gameID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create world service: %w", err)
	}
	if _, err := worldSvc.Load(ctx, &world.LoadInput{GameID: gameID}); err != nil {
		return nil, fmt.Errorf("failed to load game %q: %w", gameID, err)
	}

	var source toolkitdice.Roller = toolkitdice.DefaultRoller
	if seed != 0 {
		source = dice.NewSeededSource(seed)
	}
	diceSvc, err := dice.New(&dice.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("failed to create dice engine: %w", err)
	}

	combatSvc, err := combat.New(&combat.Config{
		World:    worldSvc,
		Dice:     diceSvc,
		EventBus: events.NewBus(),
		IDGen:    idgen.NewUUID(""),
		Weapons:  content.Weapons(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create combat service: %w", err)
	}

	return &app{
		gameID:  gameID,
		world:   worldSvc,
		dice:    diceSvc,
		combat:  combatSvc,
		rollLog: rollLog,
		table:   content.ChapterOneScenes(),
	}, nil
}

// save persists the loaded document. Every mutating command ends here;
// a CLI process that exits without saving loses its work.
func (a *app) save(ctx context.Context) error {
	if _, err := a.world.Save(ctx, &world.SaveInput{}); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// record appends a roll to the audit log when one is configured. Logging
// failures never fail the roll.
func (a *app) record(ctx context.Context, result *dice.RollResult) {
	if a.rollLog == nil || result == nil {
		return
	}
	if _, err := a.rollLog.Append(ctx, rolllog.AppendInput{
		GameID: a.gameID,
		Result: result,
	}); err != nil {
		slog.Warn("Failed to record roll", "error", err)
	}
}

// printJSON pretty-prints a structured result
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// lookupTemplate resolves an enemy template by id
func lookupTemplate(name string) (*entities.Entity, error) {
	templates := content.Templates()
	if template, ok := templates[name]; ok {
		return template, nil
	}

	known := slices.Sorted(maps.Keys(templates))
	return nil, fmt.Errorf("unknown enemy template %q (have: %s)", name, strings.Join(known, ", "))
}
