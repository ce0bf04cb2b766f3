package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrabble-go/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.app.LoadTestDictionary()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) registerUser(username string) string {
	session, err := s.app.AuthService.Register(s.ctx, username, "secret123")
	s.Require().NoError(err)
	return session.Token
}

// Test: Complete game flow from registration through to game over
func (s *IntegrationSuite) TestCompleteGameFlow() {
	// Step 1: Register two users and resolve them from their sessions
	aliceToken := s.registerUser("alice")
	bobToken := s.registerUser("bob")

	alice, err := s.app.AuthService.GetUser(aliceToken)
	s.Require().NoError(err)
	bob, err := s.app.AuthService.GetUser(bobToken)
	s.Require().NoError(err)
	s.Equal(int64(1), alice.ID)
	s.Equal(int64(2), bob.ID)

	// Step 2: Alice creates a game
	game, err := s.app.GameController.CreateGame(s.ctx, "friday-night", alice.Username)
	s.Require().NoError(err)
	s.Equal(model.GamePending, game.State)

	// Step 3: Swap in a known bag so each draw is predictable. Tiles come
	// off the end, so alice is re-dealt S, M, A, R, T, I, L and bob will
	// draw X, E, I, T, S, P, A, leaving a lone Q.
	stored, err := s.app.Storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	stored.Bag = model.Bag{
		model.LetterTile('Q'), model.LetterTile('A'), model.LetterTile('P'),
		model.LetterTile('S'), model.LetterTile('T'), model.LetterTile('I'),
		model.LetterTile('E'), model.LetterTile('X'), model.LetterTile('L'),
		model.LetterTile('I'), model.LetterTile('T'), model.LetterTile('R'),
		model.LetterTile('A'), model.LetterTile('M'), model.LetterTile('S'),
	}
	stored.Racks[0] = nil
	stored.FillRack(0)

	// Step 4: Bob joins and alice starts; the mock random picks alice first
	_, err = s.app.GameController.JoinGame(s.ctx, game.ID, bob.Username)
	s.Require().NoError(err)

	started, err := s.app.GameController.StartGame(s.ctx, game.ID, alice.Username)
	s.Require().NoError(err)
	s.Equal(model.GameStarted, started.State)
	s.Equal("alice", started.CurrentPlayer())

	// Step 5: Alice opens with MAR through the centre
	played, score, err := s.app.GameController.Play(s.ctx, game.ID, alice.Username, &model.Turn{
		Placements: []model.Placement{
			{Index: 112, Tile: model.LetterTile('M')},
			{Index: 113, Tile: model.LetterTile('A')},
			{Index: 114, Tile: model.LetterTile('R')},
		},
	})
	s.Require().NoError(err)
	s.Equal(10, score.Total())
	s.Equal("bob", played.CurrentPlayer())

	// Step 6: Bob hooks TAX below, crossing MA and AX
	_, score, err = s.app.GameController.Play(s.ctx, game.ID, bob.Username, &model.Turn{
		Placements: []model.Placement{
			{Index: 126, Tile: model.LetterTile('T')},
			{Index: 127, Tile: model.LetterTile('A')},
			{Index: 128, Tile: model.LetterTile('X')},
		},
	})
	s.Require().NoError(err)
	s.Equal(40, score.Total())

	// Step 7: Alice extends bob's T into TIL
	_, score, err = s.app.GameController.Play(s.ctx, game.ID, alice.Username, &model.Turn{
		Placements: []model.Placement{
			{Index: 141, Tile: model.LetterTile('I')},
			{Index: 156, Tile: model.LetterTile('L')},
		},
	})
	s.Require().NoError(err)
	s.Equal(3, score.Total())

	// Step 8: Bob goes out with PIES; the bag is empty, so the game ends
	final, _, err := s.app.GameController.Play(s.ctx, game.ID, bob.Username, &model.Turn{
		Placements: []model.Placement{
			{Index: 169, Tile: model.LetterTile('P')},
			{Index: 170, Tile: model.LetterTile('I')},
			{Index: 171, Tile: model.LetterTile('E')},
			{Index: 172, Tile: model.LetterTile('S')},
		},
	})
	s.Require().NoError(err)
	s.Equal(model.GameOver, final.State)

	// Alice is docked for the tiles left on her rack
	lastTurn := final.Scores[0][len(final.Scores[0])-1]
	s.Equal([]model.WordScore{{Word: model.RemainingTilesEntry, Points: -12}}, lastTurn.Words)

	winner, ok := final.Winner()
	s.Require().True(ok)
	s.Equal("bob", winner)
	s.Greater(final.TotalScore(1), final.TotalScore(0))

	// Step 9: The finished game is persisted under its name
	persisted, err := s.app.Storage.GetGameByName(s.ctx, "friday-night")
	s.Require().NoError(err)
	s.Equal(model.GameOver, persisted.State)
	s.Equal(final.TotalScore(0), persisted.TotalScore(0))
	s.Equal(final.TotalScore(1), persisted.TotalScore(1))
}

// Test: Sessions expire and are cleaned through the shared clock
func (s *IntegrationSuite) TestSessionExpiryAcrossServices() {
	token := s.registerUser("alice")

	_, err := s.app.AuthService.ValidateSession(token)
	s.Require().NoError(err)

	// A day later the session has lapsed
	s.app.MockClock.Advance(25 * time.Hour)

	_, err = s.app.AuthService.ValidateSession(token)
	s.Error(err)
}

// Test: Games listed through the controller survive auth churn
func (s *IntegrationSuite) TestListGamesAcrossUsers() {
	aliceToken := s.registerUser("alice")
	s.registerUser("bob")

	alice, err := s.app.AuthService.GetUser(aliceToken)
	s.Require().NoError(err)

	_, err = s.app.GameController.CreateGame(s.ctx, "first", alice.Username)
	s.Require().NoError(err)
	_, err = s.app.GameController.CreateGame(s.ctx, "second", alice.Username)
	s.Require().NoError(err)

	games, err := s.app.GameController.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("first", games[0].Name)
	s.Equal("second", games[1].Name)
}
