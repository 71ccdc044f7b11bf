package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gamemaster/internal/dice"
	"github.com/KirkDiggler/gamemaster/internal/entities"
	"github.com/KirkDiggler/gamemaster/internal/orchestrators/world"
	"github.com/KirkDiggler/gamemaster/internal/scenes"
)

var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Show and advance the story",
}

var sceneShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Describe the current scene",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		state, err := a.world.GetState(cmd.Context(), &world.GetStateInput{})
		if err != nil {
			return err
		}

		entry := a.table[state.State.CurrentScene]
		if entry == nil {
			return fmt.Errorf("scene %q is not in the scene table", state.State.CurrentScene)
		}

		fmt.Printf("=== %s (%s) ===\n\n%s\n", entry.Name, state.State.CurrentScene, entry.Description)
		if entry.Combat {
			fmt.Printf("\nCombat scene. Enemies: %s\n", strings.Join(entry.Enemies, ", "))
		}
		if len(entry.Triggers) > 0 {
			fmt.Println("\nAvailable checks:")
			for name, trigger := range entry.Triggers {
				if trigger.Skill == "" {
					fmt.Printf("  %s (no check)\n", name)
					continue
				}
				fmt.Printf("  %s (%s DC %d)\n", name, trigger.Skill, trigger.DC)
			}
		}
		return nil
	},
}

var sceneEvalDryRun bool

var sceneEvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Fire the scene transition the narrative flags call for, if any",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		state, err := a.world.GetState(ctx, &world.GetStateInput{})
		if err != nil {
			return err
		}

		next, fired := scenes.Evaluate(a.table, state.State)
		if !fired {
			fmt.Printf("No transition out of %s.\n", state.State.CurrentScene)
			return nil
		}
		if sceneEvalDryRun {
			fmt.Printf("%s would complete to %s.\n", state.State.CurrentScene, next)
			return nil
		}

		if _, err := a.world.SetValue(ctx, &world.SetValueInput{
			Path:  "current_scene",
			Value: next,
		}); err != nil {
			return err
		}
		if err := a.save(ctx); err != nil {
			return err
		}

		fmt.Printf("%s completes. Now: %s\n", state.State.CurrentScene, next)
		if entry := a.table[next]; entry != nil {
			fmt.Printf("\n=== %s ===\n\n%s\n", entry.Name, entry.Description)
		}
		return nil
	},
}

var (
	checkAdvantage    bool
	checkDisadvantage bool
)

var sceneCheckCmd = &cobra.Command{
	Use:   "check <trigger> <entity>",
	Short: "Attempt one of the current scene's skill checks",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		state, err := a.world.GetState(ctx, &world.GetStateInput{})
		if err != nil {
			return err
		}

		entry := a.table[state.State.CurrentScene]
		if entry == nil {
			return fmt.Errorf("scene %q is not in the scene table", state.State.CurrentScene)
		}
		trigger := entry.Triggers[args[0]]
		if trigger == nil {
			return fmt.Errorf("scene %q has no check %q", state.State.CurrentScene, args[0])
		}

		entity, ok := state.State.FindEntity(args[1])
		if !ok {
			return fmt.Errorf("no entity %q in the world", args[1])
		}

		// Some triggers reveal themselves without a roll.
		if trigger.Skill == "" {
			fmt.Println(trigger.SuccessText)
			return nil
		}

		ability := entities.AbilityForSkill(trigger.Skill)
		roll, err := a.dice.RollAbilityCheck(entity.ID, entity.AbilityModifier(ability), checkAdvantage, checkDisadvantage)
		if err != nil {
			return err
		}
		a.record(ctx, roll)

		fmt.Println(dice.FormatResult(roll))
		if dice.CheckSuccess(roll, trigger.DC) {
			fmt.Printf("Success (DC %d): %s\n", trigger.DC, trigger.SuccessText)
		} else {
			fmt.Printf("Failure (DC %d): %s\n", trigger.DC, trigger.FailText)
		}
		return nil
	},
}

func init() {
	sceneEvalCmd.Flags().BoolVar(&sceneEvalDryRun, "dry-run", false, "report the transition without applying it")
	sceneCheckCmd.Flags().BoolVar(&checkAdvantage, "advantage", false, "check with advantage")
	sceneCheckCmd.Flags().BoolVar(&checkDisadvantage, "disadvantage", false, "check with disadvantage")

	sceneCmd.AddCommand(sceneShowCmd)
	sceneCmd.AddCommand(sceneEvalCmd)
	sceneCmd.AddCommand(sceneCheckCmd)
}
