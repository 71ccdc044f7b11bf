//go:build integration
// +build integration

package combat_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gamemaster/internal/content"
	"github.com/KirkDiggler/gamemaster/internal/dice"
	"github.com/KirkDiggler/gamemaster/internal/orchestrators/combat"
	"github.com/KirkDiggler/gamemaster/internal/orchestrators/world"
	"github.com/KirkDiggler/gamemaster/internal/pkg/idgen"
	"github.com/KirkDiggler/gamemaster/internal/repositories/gamestate"
	"github.com/KirkDiggler/gamemaster/internal/scenes"
	"github.com/KirkDiggler/gamemaster/internal/testutils"
)

// CampaignIntegrationTestSuite plays the opening of chapter one over a real
// Redis-backed repository: load, scene transitions, the goblin ambush fight,
// and a save/reload round trip.
type CampaignIntegrationTestSuite struct {
	suite.Suite

	ctx          context.Context
	source       *scriptedSource
	repo         gamestate.Repository
	world        *world.Orchestrator
	combat       *combat.Orchestrator
	table        scenes.Table
	redisCleanup func()
}

func TestCampaignIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(CampaignIntegrationTestSuite))
}

func (s *CampaignIntegrationTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.source = &scriptedSource{}
	s.table = content.ChapterOneScenes()

	redisClient, cleanup := testutils.CreateTestRedisClient(s.T())
	s.redisCleanup = cleanup

	repo, err := gamestate.NewRedis(&gamestate.RedisConfig{
		Client: redisClient,
	})
	s.Require().NoError(err)
	s.repo = repo

	worldSvc, err := world.New(&world.Config{
		Repo:     s.repo,
		Defaults: content.NewState(content.DefaultGameID),
	})
	s.Require().NoError(err)
	s.world = worldSvc

	diceSvc, err := dice.New(&dice.Config{Source: s.source})
	s.Require().NoError(err)

	combatSvc, err := combat.New(&combat.Config{
		World:    s.world,
		Dice:     diceSvc,
		EventBus: events.NewBus(),
		IDGen:    idgen.NewSequential(""),
		Weapons:  content.Weapons(),
	})
	s.Require().NoError(err)
	s.combat = combatSvc
}

func (s *CampaignIntegrationTestSuite) TearDownTest() {
	if s.redisCleanup != nil {
		s.redisCleanup()
	}
}

// advance moves the turn forward and returns whose turn it now is.
func (s *CampaignIntegrationTestSuite) advance() string {
	out, err := s.combat.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{})
	s.Require().NoError(err)
	return out.CombatantID
}

// moveScene fires the pending transition and records it on the document.
func (s *CampaignIntegrationTestSuite) moveScene(expected string) {
	state, err := s.world.GetState(s.ctx, &world.GetStateInput{})
	s.Require().NoError(err)

	next, fired := scenes.Evaluate(s.table, state.State)
	s.Require().True(fired, "no transition out of %s", state.State.CurrentScene)
	s.Require().Equal(expected, next)

	_, err = s.world.SetValue(s.ctx, &world.SetValueInput{
		Path:  "current_scene",
		Value: next,
	})
	s.Require().NoError(err)
}

// TestChapterOnePlaythrough drives the campaign from the road to the
// aftermath of the ambush: four goblins spawned and cut down, turns passed
// for the fallen, one goblin getting a hit in, and the whole document
// surviving a save and a cold reload.
func (s *CampaignIntegrationTestSuite) TestChapterOnePlaythrough() {
	loaded, err := s.world.Load(s.ctx, &world.LoadInput{GameID: content.DefaultGameID})
	s.Require().NoError(err)
	s.Equal(content.SceneIntro, loaded.State.CurrentScene)
	s.Len(loaded.State.Characters, 3)
	s.Empty(loaded.State.Enemies)

	// Nothing has happened on the road yet.
	state, err := s.world.GetState(s.ctx, &world.GetStateInput{})
	s.Require().NoError(err)
	_, fired := scenes.Evaluate(s.table, state.State)
	s.False(fired)

	// The party walks into the ambush.
	_, err = s.world.SetFlag(s.ctx, &world.SetFlagInput{Name: content.FlagAmbushTriggered, Value: true})
	s.Require().NoError(err)
	s.moveScene(content.SceneGoblinAmbush)

	// Spawn the scene's enemies from the content template.
	entry := s.table[content.SceneGoblinAmbush]
	s.Require().True(entry.Combat)
	spawned, err := s.combat.SpawnEnemies(s.ctx, &combat.SpawnEnemiesInput{
		Template: content.Templates()["goblin"],
		Count:    len(entry.Enemies),
	})
	s.Require().NoError(err)
	s.Equal([]string{"goblin_1", "goblin_2", "goblin_3", "goblin_4"}, spawned.EnemyIDs)

	// Initiative faces: vex 17(+3), thokk 14(+2), lira 10(+0),
	// goblins 13, 11, 9, 7 (+2 each).
	s.source.values = []int{17, 14, 10, 13, 11, 9, 7}
	started, err := s.combat.StartCombat(s.ctx, &combat.StartCombatInput{
		CombatantIDs: []string{"vex", "thokk", "lira", "goblin_1", "goblin_2", "goblin_3", "goblin_4"},
	})
	s.Require().NoError(err)
	s.Equal(
		[]string{"vex", "thokk", "goblin_1", "goblin_2", "goblin_3", "lira", "goblin_4"},
		started.Combat.TurnOrder,
	)

	// Vex opens with a critical and drops goblin_1.
	s.source.values = append(s.source.values, 20, 4, 3)
	attack, err := s.combat.ResolveAttack(s.ctx, &combat.ResolveAttackInput{
		AttackerID: "vex", TargetID: "goblin_1", Weapon: "shortsword",
	})
	s.Require().NoError(err)
	s.True(attack.Attack.Critical)
	s.True(attack.TargetDefeated)

	s.Equal("thokk", s.advance())

	// Thokk crits goblin_2 off the board.
	s.source.values = append(s.source.values, 20, 5, 2)
	attack, err = s.combat.ResolveAttack(s.ctx, &combat.ResolveAttackInput{
		AttackerID: "thokk", TargetID: "goblin_2", Weapon: "longsword",
	})
	s.Require().NoError(err)
	s.True(attack.TargetDefeated)

	// The fallen goblins still get their slots; the table passes them.
	s.Equal("goblin_1", s.advance())
	s.Equal("goblin_2", s.advance())
	s.Equal("goblin_3", s.advance())

	// Goblin_3 swings at Vex and misses.
	s.source.values = append(s.source.values, 3)
	attack, err = s.combat.ResolveAttack(s.ctx, &combat.ResolveAttackInput{
		AttackerID: "goblin_3", TargetID: "vex", Weapon: "scimitar",
	})
	s.Require().NoError(err)
	s.False(attack.Hit)
	s.Nil(attack.Damage)

	s.Equal("lira", s.advance())

	// Lira answers with a critical mace blow.
	s.source.values = append(s.source.values, 20, 6, 6)
	attack, err = s.combat.ResolveAttack(s.ctx, &combat.ResolveAttackInput{
		AttackerID: "lira", TargetID: "goblin_3", Weapon: "mace",
	})
	s.Require().NoError(err)
	s.True(attack.TargetDefeated)

	s.Equal("goblin_4", s.advance())

	// The last goblin lands one on Thokk before going down.
	s.source.values = append(s.source.values, 14, 4)
	attack, err = s.combat.ResolveAttack(s.ctx, &combat.ResolveAttackInput{
		AttackerID: "goblin_4", TargetID: "thokk", Weapon: "scimitar",
	})
	s.Require().NoError(err)
	s.True(attack.Hit)
	s.Equal(6, attack.TargetHP)

	// Wrapping past the end of the order starts round two.
	turn, err := s.combat.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{})
	s.Require().NoError(err)
	s.Equal("vex", turn.CombatantID)
	s.True(turn.NewRound)
	s.Equal(2, turn.Round)

	s.source.values = append(s.source.values, 20, 3, 3)
	attack, err = s.combat.ResolveAttack(s.ctx, &combat.ResolveAttackInput{
		AttackerID: "vex", TargetID: "goblin_4", Weapon: "shortsword",
	})
	s.Require().NoError(err)
	s.True(attack.TargetDefeated)

	end, err := s.combat.CheckEnd(s.ctx, &combat.CheckEndInput{})
	s.Require().NoError(err)
	s.True(end.Over)
	s.Equal(combat.EndReasonEnemiesDefeated, end.Reason)

	ended, err := s.combat.EndCombat(s.ctx, &combat.EndCombatInput{Reason: end.Reason})
	s.Require().NoError(err)
	s.Equal([]string{"goblin_1", "goblin_2", "goblin_3", "goblin_4"}, ended.DefeatedEnemies)

	// Lira patches Thokk up after the fight.
	healed, err := s.world.UpdateHP(s.ctx, &world.UpdateHPInput{EntityID: "thokk", Delta: 4})
	s.Require().NoError(err)
	s.Equal(10, healed.HP)

	// Record the victory and move the story on.
	_, err = s.world.SetFlag(s.ctx, &world.SetFlagInput{Name: content.FlagGoblinsDefeated, Value: true})
	s.Require().NoError(err)
	s.moveScene(content.SceneAfterAmbush)

	_, err = s.world.Save(s.ctx, &world.SaveInput{})
	s.Require().NoError(err)

	// A cold start against the same Redis sees everything that happened.
	reloadedSvc, err := world.New(&world.Config{
		Repo:     s.repo,
		Defaults: content.NewState(content.DefaultGameID),
	})
	s.Require().NoError(err)
	reloaded, err := reloadedSvc.Load(s.ctx, &world.LoadInput{GameID: content.DefaultGameID})
	s.Require().NoError(err)

	doc := reloaded.State
	s.Equal(content.SceneAfterAmbush, doc.CurrentScene)
	s.True(doc.NarrativeProgress.Flags[content.FlagAmbushTriggered])
	s.True(doc.NarrativeProgress.Flags[content.FlagGoblinsDefeated])
	s.False(doc.Combat.Active)
	s.Equal(10, doc.Characters["thokk"].HP)
	s.Len(doc.Enemies, 4)
	for _, id := range ended.DefeatedEnemies {
		enemy := doc.Enemies[id]
		s.Require().NotNil(enemy, "defeated enemy %s should be retained", id)
		s.Equal(0, enemy.HP)
		s.True(enemy.IsDead())
	}
}

// TestResetRestoresDefaults verifies a mid-campaign document can be thrown
// away for a pristine one, and that the reset is persisted immediately.
func (s *CampaignIntegrationTestSuite) TestResetRestoresDefaults() {
	_, err := s.world.Load(s.ctx, &world.LoadInput{GameID: content.DefaultGameID})
	s.Require().NoError(err)

	_, err = s.world.SetFlag(s.ctx, &world.SetFlagInput{Name: content.FlagAmbushTriggered, Value: true})
	s.Require().NoError(err)
	_, err = s.world.UpdateHP(s.ctx, &world.UpdateHPInput{EntityID: "vex", Delta: -8})
	s.Require().NoError(err)
	_, err = s.world.Save(s.ctx, &world.SaveInput{})
	s.Require().NoError(err)

	_, err = s.world.Reset(s.ctx, &world.ResetInput{})
	s.Require().NoError(err)

	// Reset persists without an explicit Save.
	reloadedSvc, err := world.New(&world.Config{
		Repo:     s.repo,
		Defaults: content.NewState(content.DefaultGameID),
	})
	s.Require().NoError(err)
	reloaded, err := reloadedSvc.Load(s.ctx, &world.LoadInput{GameID: content.DefaultGameID})
	s.Require().NoError(err)

	s.Equal(content.SceneIntro, reloaded.State.CurrentScene)
	s.Empty(reloaded.State.NarrativeProgress.Flags)
	s.Equal(9, reloaded.State.Characters["vex"].HP)
}
