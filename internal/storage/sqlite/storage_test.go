package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrabble-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	storage, err := Open(filepath.Join(s.T().TempDir(), "scrabble.db"))
	s.Require().NoError(err)
	s.storage = storage
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestOpenRequiresPath() {
	_, err := Open("  ")
	s.Error(err)
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := &model.User{Username: "alice", PasswordHash: "hash123"}

	err := s.storage.CreateUser(s.ctx, user)
	s.Require().NoError(err)
	s.Equal(int64(1), user.ID)

	retrieved, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
	s.Equal("hash123", retrieved.PasswordHash)
}

func (s *StorageSuite) TestCreateUserDuplicateUsername() {
	s.Require().NoError(s.storage.CreateUser(s.ctx, &model.User{Username: "alice", PasswordHash: "h1"}))

	err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice", PasswordHash: "h2"})
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *StorageSuite) TestUserColumnsAreNotNullable() {
	_, err := s.storage.DB().ExecContext(s.ctx,
		"INSERT INTO users (username, hashed_password) VALUES (NULL, 'h')")
	s.Error(err)

	_, err = s.storage.DB().ExecContext(s.ctx,
		"INSERT INTO users (username, hashed_password) VALUES ('alice', NULL)")
	s.Error(err)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 999)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	user := &model.User{Username: "alice", PasswordHash: "h"}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)

	_, err = s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Game tests

func (s *StorageSuite) newGame(name string) *model.Game {
	return &model.Game{
		Name:      name,
		State:     model.GamePending,
		Board:     model.StandardBoard(),
		Bag:       model.StandardBag(),
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestCreateAndGetGame() {
	game := s.newGame("chess")

	err := s.storage.CreateGame(s.ctx, game)
	s.Require().NoError(err)
	s.Equal(int64(1), game.ID)

	retrieved, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), retrieved.ID)
	s.Equal("chess", retrieved.Name)
	s.Equal(model.GamePending, retrieved.State)
	s.Len(retrieved.Bag, 100)
}

func (s *StorageSuite) TestCreateGameDuplicateName() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("chess")))

	err := s.storage.CreateGame(s.ctx, s.newGame("chess"))
	s.ErrorIs(err, model.ErrGameNameTaken)

	// The failed insert didn't burn the row.
	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 1)
}

func (s *StorageSuite) TestGameNameIsNotNullable() {
	_, err := s.storage.DB().ExecContext(s.ctx,
		"INSERT INTO games (name) VALUES (NULL)")
	s.Error(err)
}

func (s *StorageSuite) TestGameWithNullDataIsReadable() {
	_, err := s.storage.DB().ExecContext(s.ctx,
		"INSERT INTO games (name) VALUES ('bare')")
	s.Require().NoError(err)

	game, err := s.storage.GetGameByName(s.ctx, "bare")
	s.Require().NoError(err)
	s.Equal("bare", game.Name)
	s.Equal(model.GamePending, game.State)
	s.Empty(game.Players)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, 999)
	s.ErrorIs(err, model.ErrGameNotFound)

	_, err = s.storage.GetGameByName(s.ctx, "nope")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSaveGameRoundTripsState() {
	game := s.newGame("chess")
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))

	game.Players = []string{"alice", "bob"}
	game.Racks = []model.Rack{
		{model.LetterTile('A'), model.BlankTile()},
		{model.LetterTile('Z')},
	}
	game.State = model.GameStarted
	game.Scores = [][]model.TurnScore{
		{{Words: []model.WordScore{{Word: "MAR", Points: 10}}}},
		nil,
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	retrieved, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.Players, retrieved.Players)
	s.Equal(game.Racks, retrieved.Racks)
	s.Equal(model.GameStarted, retrieved.State)
	s.Equal(10, retrieved.TotalScore(0))
}

func (s *StorageSuite) TestSaveGameNotCreated() {
	game := s.newGame("chess")
	game.ID = 42
	s.ErrorIs(s.storage.SaveGame(s.ctx, game), model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGames() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("alpha")))
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("beta")))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("alpha", games[0].Name)
	s.Equal("beta", games[1].Name)
}

func (s *StorageSuite) TestDeleteGame() {
	game := s.newGame("chess")
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))

	s.Require().NoError(s.storage.DeleteGame(s.ctx, game.ID))

	_, err := s.storage.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)

	// The name is free again.
	s.NoError(s.storage.CreateGame(s.ctx, s.newGame("chess")))
}
