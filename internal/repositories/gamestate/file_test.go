package gamestate_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gamemaster/internal/entities"
	"github.com/KirkDiggler/gamemaster/internal/errors"
	"github.com/KirkDiggler/gamemaster/internal/repositories/gamestate"
)

const testGameID = "lost-mines"

func newTestState(s *suite.Suite) *entities.WorldState {
	state := entities.New(testGameID)
	state.CurrentChapter = "chapter_1"
	state.CurrentScene = "goblin_ambush"

	for _, e := range []*entities.Entity{
		{
			ID: "vex", Name: "Vex", Kind: entities.KindCharacter,
			HP: 9, MaxHP: 9, AC: 14,
			Stats: entities.Stats{Strength: 8, Dexterity: 17, Constitution: 12, Intelligence: 13, Wisdom: 12, Charisma: 14},
		},
		{
			ID: "gundren", Name: "Gundren Rockseeker", Kind: entities.KindNPC,
			HP: 8, MaxHP: 8, AC: 10,
			Stats: entities.Stats{Strength: 10, Dexterity: 10, Constitution: 12, Intelligence: 12, Wisdom: 14, Charisma: 12},
		},
		{
			ID: "goblin-1", Name: "Goblin", Kind: entities.KindEnemy,
			HP: 7, MaxHP: 7, AC: 15,
			Stats: entities.Stats{Strength: 8, Dexterity: 14, Constitution: 10, Intelligence: 10, Wisdom: 8, Charisma: 8},
		},
	} {
		s.Require().NoError(state.AddEntity(e))
	}
	state.NarrativeProgress.Flags["ambush_triggered"] = true

	return state
}

type FileRepositoryTestSuite struct {
	suite.Suite
	dir  string
	repo gamestate.Repository
	ctx  context.Context
}

func (s *FileRepositoryTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	repo, err := gamestate.NewFile(&gamestate.FileConfig{Dir: s.dir})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func TestFileRepositorySuite(t *testing.T) {
	suite.Run(t, new(FileRepositoryTestSuite))
}

func (s *FileRepositoryTestSuite) savePath() string {
	return filepath.Join(s.dir, testGameID+".json")
}

func (s *FileRepositoryTestSuite) TestNewFileRequiresDir() {
	_, err := gamestate.NewFile(&gamestate.FileConfig{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *FileRepositoryTestSuite) TestSaveAndGetRoundTrip() {
	state := newTestState(&s.Suite)

	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{State: state})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, gamestate.GetInput{GameID: testGameID})
	s.Require().NoError(err)

	s.Assert().Equal(testGameID, out.State.GameID)
	s.Assert().Equal("goblin_ambush", out.State.CurrentScene)
	s.Assert().Equal(9, out.State.Characters["vex"].HP)
	s.Assert().Equal(15, out.State.Enemies["goblin-1"].AC)
	s.Assert().True(out.State.NarrativeProgress.Flags["ambush_triggered"])
	s.Assert().False(out.State.Combat.Active)
}

func (s *FileRepositoryTestSuite) TestSaveWritesReadableJSON() {
	state := newTestState(&s.Suite)

	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{State: state})
	s.Require().NoError(err)

	data, err := os.ReadFile(s.savePath())
	s.Require().NoError(err)

	var doc map[string]interface{}
	s.Require().NoError(json.Unmarshal(data, &doc))
	s.Assert().Equal(testGameID, doc["game_id"])
	s.Assert().Contains(doc, "characters")
	s.Assert().Contains(doc, "narrative_progress")
	s.Assert().Contains(doc, "combat")
}

func (s *FileRepositoryTestSuite) TestSaveReplacesPreviousSave() {
	state := newTestState(&s.Suite)
	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{State: state})
	s.Require().NoError(err)

	state.Characters["vex"].HP = 4
	state.CurrentScene = "cragmaw_hideout"
	_, err = s.repo.Save(s.ctx, gamestate.SaveInput{State: state})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, gamestate.GetInput{GameID: testGameID})
	s.Require().NoError(err)
	s.Assert().Equal(4, out.State.Characters["vex"].HP)
	s.Assert().Equal("cragmaw_hideout", out.State.CurrentScene)
}

func (s *FileRepositoryTestSuite) TestSaveLeavesNoTempFiles() {
	state := newTestState(&s.Suite)

	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{State: state})
	s.Require().NoError(err)

	files, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Require().Len(files, 1)
	s.Assert().Equal(testGameID+".json", files[0].Name())
}

func (s *FileRepositoryTestSuite) TestSaveCreatesDirectory() {
	nested := filepath.Join(s.dir, "saves", "campaign")
	repo, err := gamestate.NewFile(&gamestate.FileConfig{Dir: nested})
	s.Require().NoError(err)

	_, err = repo.Save(s.ctx, gamestate.SaveInput{State: newTestState(&s.Suite)})
	s.Require().NoError(err)

	_, err = os.Stat(filepath.Join(nested, testGameID+".json"))
	s.Assert().NoError(err)
}

func (s *FileRepositoryTestSuite) TestSaveRejectsInvalidState() {
	state := newTestState(&s.Suite)
	state.Characters["vex"].HP = 99 // above max_hp

	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{State: state})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, gamestate.GetInput{GameID: testGameID})
	s.Assert().True(errors.IsNotFound(err), "nothing may be written on a rejected save")
}

func (s *FileRepositoryTestSuite) TestSaveRejectsNilState() {
	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *FileRepositoryTestSuite) TestGetMissingFileIsNotFound() {
	_, err := s.repo.Get(s.ctx, gamestate.GetInput{GameID: "never-saved"})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *FileRepositoryTestSuite) TestGetEmptyGameIDIsInvalid() {
	_, err := s.repo.Get(s.ctx, gamestate.GetInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *FileRepositoryTestSuite) TestGetMalformedJSONIsCorruptState() {
	s.Require().NoError(os.WriteFile(s.savePath(), []byte("{ not json"), 0o644))

	_, err := s.repo.Get(s.ctx, gamestate.GetInput{GameID: testGameID})
	s.Require().Error(err)
	s.Assert().True(errors.IsCorruptState(err),
		"expected CORRUPT_STATE, got %v", err)
}

func (s *FileRepositoryTestSuite) TestGetInvalidDocumentIsCorruptState() {
	state := newTestState(&s.Suite)
	state.Characters["vex"].HP = 42 // above max_hp, written around the repository
	data, err := json.Marshal(state)
	s.Require().NoError(err)
	s.Require().NoError(os.WriteFile(s.savePath(), []byte(data), 0o644))

	_, err = s.repo.Get(s.ctx, gamestate.GetInput{GameID: testGameID})
	s.Require().Error(err)
	s.Assert().True(errors.IsCorruptState(err))
}

func (s *FileRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{State: newTestState(&s.Suite)})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, gamestate.DeleteInput{GameID: testGameID})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, gamestate.GetInput{GameID: testGameID})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, gamestate.DeleteInput{GameID: testGameID})
	s.Assert().True(errors.IsNotFound(err))
}
