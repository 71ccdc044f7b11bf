package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gamemaster/internal/dice"
	"github.com/KirkDiggler/gamemaster/internal/orchestrators/combat"
	"github.com/KirkDiggler/gamemaster/internal/orchestrators/world"
)

var combatCmd = &cobra.Command{
	Use:   "combat",
	Short: "Run turn-based combat",
}

var combatStartCmd = &cobra.Command{
	Use:   "start [entity_ids...]",
	Short: "Roll initiative and start combat; defaults to the party plus every living enemy",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		ids := args
		if len(ids) == 0 {
			party, err := a.world.PartyStatus(ctx, &world.PartyStatusInput{})
			if err != nil {
				return err
			}
			enemies, err := a.world.LivingEnemies(ctx, &world.LivingEnemiesInput{})
			if err != nil {
				return err
			}
			for _, member := range party.Members {
				ids = append(ids, member.ID)
			}
			for _, enemy := range enemies.Enemies {
				ids = append(ids, enemy.ID)
			}
		}

		out, err := a.combat.StartCombat(ctx, &combat.StartCombatInput{CombatantIDs: ids})
		if err != nil {
			return err
		}
		if err := a.save(ctx); err != nil {
			return err
		}

		for _, roll := range out.InitiativeRolls {
			a.record(ctx, roll)
			fmt.Println(dice.FormatResult(roll))
		}
		fmt.Printf("Round %d, turn order: %s\n", out.Combat.Round, strings.Join(out.Combat.TurnOrder, ", "))
		return nil
	},
}

var combatAdvanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Move to the next combatant's turn",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		out, err := a.combat.AdvanceTurn(ctx, &combat.AdvanceTurnInput{})
		if err != nil {
			return err
		}
		if err := a.save(ctx); err != nil {
			return err
		}

		if out.NewRound {
			fmt.Printf("Round %d begins.\n", out.Round)
		}
		fmt.Printf("It is %s's turn.\n", out.CombatantID)
		return nil
	},
}

var combatEndReason string

var combatEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End combat, marking downed enemies dead",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		out, err := a.combat.EndCombat(ctx, &combat.EndCombatInput{Reason: combatEndReason})
		if err != nil {
			return err
		}
		if err := a.save(ctx); err != nil {
			return err
		}

		fmt.Printf("Combat over: %s\n", out.Reason)
		if len(out.DefeatedEnemies) > 0 {
			fmt.Printf("Defeated: %s\n", strings.Join(out.DefeatedEnemies, ", "))
		}
		return nil
	},
}

var combatStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the combat state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		out, err := a.combat.Status(cmd.Context(), &combat.StatusInput{})
		if err != nil {
			return err
		}
		if !out.Active {
			fmt.Println("No combat in progress.")
			return nil
		}
		return printJSON(out)
	},
}

var combatCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether one side is defeated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		out, err := a.combat.CheckEnd(cmd.Context(), &combat.CheckEndInput{})
		if err != nil {
			return err
		}
		if out.Over {
			fmt.Printf("Combat is decided: %s\n", out.Reason)
		} else {
			fmt.Println("Combat continues.")
		}
		return nil
	},
}

var (
	attackAdvantage    bool
	attackDisadvantage bool
)

var combatAttackCmd = &cobra.Command{
	Use:   "attack <attacker> <target> <weapon>",
	Short: "Resolve one attack: to-hit vs AC, damage on a hit",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		out, err := a.combat.ResolveAttack(ctx, &combat.ResolveAttackInput{
			AttackerID:   args[0],
			TargetID:     args[1],
			Weapon:       args[2],
			Advantage:    attackAdvantage,
			Disadvantage: attackDisadvantage,
		})
		if err != nil {
			return err
		}
		if err := a.save(ctx); err != nil {
			return err
		}

		a.record(ctx, out.Attack)
		fmt.Println(dice.FormatResult(out.Attack))
		if !out.Hit {
			fmt.Printf("%s misses %s (AC %d).\n", out.AttackerID, out.TargetID, out.TargetAC)
			return nil
		}

		a.record(ctx, out.Damage)
		fmt.Println(dice.FormatResult(out.Damage))
		fmt.Printf("%s takes %d %s damage, %d hp left.\n",
			out.TargetID, out.TargetHPBefore-out.TargetHP, out.DamageType, out.TargetHP)
		if out.TargetDefeated {
			fmt.Printf("%s goes down!\n", out.TargetID)
		}
		return nil
	},
}

var combatSpawnCmd = &cobra.Command{
	Use:   "spawn <template> [count]",
	Short: "Instantiate enemies from a content template, e.g. spawn goblin 4",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		count := 1
		if len(args) == 2 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("count must be an integer, got %q", args[1])
			}
			count = parsed
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		template, err := lookupTemplate(args[0])
		if err != nil {
			return err
		}

		out, err := a.combat.SpawnEnemies(ctx, &combat.SpawnEnemiesInput{
			Template: template,
			Count:    count,
		})
		if err != nil {
			return err
		}
		if err := a.save(ctx); err != nil {
			return err
		}

		fmt.Printf("Spawned: %s\n", strings.Join(out.EnemyIDs, ", "))
		return nil
	},
}

func init() {
	combatEndCmd.Flags().StringVar(&combatEndReason, "reason", combat.EndReasonEnemiesDefeated, "why combat ended")
	combatAttackCmd.Flags().BoolVar(&attackAdvantage, "advantage", false, "attack with advantage")
	combatAttackCmd.Flags().BoolVar(&attackDisadvantage, "disadvantage", false, "attack with disadvantage")

	combatCmd.AddCommand(combatStartCmd)
	combatCmd.AddCommand(combatAdvanceCmd)
	combatCmd.AddCommand(combatEndCmd)
	combatCmd.AddCommand(combatStatusCmd)
	combatCmd.AddCommand(combatCheckCmd)
	combatCmd.AddCommand(combatAttackCmd)
	combatCmd.AddCommand(combatSpawnCmd)
}
