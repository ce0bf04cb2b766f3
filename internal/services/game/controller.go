package game

import (
	"context"
	"log/slog"

	"github.com/mcoot/scrabble-go/internal/dependencies/clock"
	"github.com/mcoot/scrabble-go/internal/dependencies/random"
	"github.com/mcoot/scrabble-go/internal/model"
	"github.com/mcoot/scrabble-go/internal/services/scoring"
	"github.com/mcoot/scrabble-go/internal/storage"
)

// Controller manages game lifecycle and turn flow
type Controller struct {
	storage        storage.Storage
	scoringService *scoring.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// NewController creates a new game controller
func NewController(
	storage storage.Storage,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		scoringService: scoringService,
		clock:          clock,
		random:         random,
		logger:         logger,
	}
}

// CreateGame initializes a new game with the creator as its first player
func (c *Controller) CreateGame(ctx context.Context, name, creator string) (*model.Game, error) {
	game := model.NewGame(name, c.random, c.clock.Now())
	if err := game.AddPlayer(creator); err != nil {
		return nil, err
	}

	if err := c.storage.CreateGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.Int64("game_id", game.ID),
		slog.String("name", game.Name),
		slog.String("creator", creator),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID int64) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// GetGameByName retrieves a game by its unique name
func (c *Controller) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	return c.storage.GetGameByName(ctx, name)
}

// ListGames returns all games ordered by creation
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	return c.storage.ListGames(ctx)
}

// JoinGame adds a player to a pending game and deals their rack
func (c *Controller) JoinGame(ctx context.Context, gameID int64, username string) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := game.AddPlayer(username); err != nil {
		return nil, err
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player joined game",
		slog.Int64("game_id", game.ID),
		slog.String("player", username),
	)

	return game, nil
}

// StartGame begins play. Only a joined player may start, every rack is
// topped up, and the starting player is chosen at random.
func (c *Controller) StartGame(ctx context.Context, gameID int64, username string) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if _, ok := game.PlayerIndexOf(username); !ok {
		return nil, model.ErrNotInGame
	}

	if err := game.Start(c.random); err != nil {
		return nil, err
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.Int64("game_id", game.ID),
		slog.String("first_player", game.CurrentPlayer()),
	)

	return game, nil
}

// Play applies one player's turn: validates the placements against the
// board and rack, scores the new words, commits the tiles, refills the rack
// and advances play. Nothing persists if any step rejects the turn.
func (c *Controller) Play(ctx context.Context, gameID int64, username string, turn *model.Turn) (*model.Game, model.TurnScore, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, model.TurnScore{}, err
	}

	playerIndex, err := c.checkTurn(game, username)
	if err != nil {
		return nil, model.TurnScore{}, err
	}

	if err := turn.Validate(game.Board); err != nil {
		return nil, model.TurnScore{}, err
	}

	score, err := c.scoringService.ScoreTurn(game.Board, turn)
	if err != nil {
		return nil, model.TurnScore{}, err
	}

	if err := game.SpendTurn(playerIndex, turn); err != nil {
		return nil, model.TurnScore{}, err
	}

	game.Board.CommitTurn(turn)
	game.RecordScore(playerIndex, score)
	game.FillRack(playerIndex)
	game.ConsecutivePasses = 0
	game.AdvanceTurn()

	if game.ShouldEnd() {
		game.Finish()
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, model.TurnScore{}, err
	}

	c.logger.Info("turn played",
		slog.Int64("game_id", game.ID),
		slog.String("player", username),
		slog.Int("points", score.Total()),
		slog.Int("tiles", len(turn.Placements)),
	)

	return game, score, nil
}

// Pass forfeits the player's turn. A full round of passes from every player,
// twice over, ends the game.
func (c *Controller) Pass(ctx context.Context, gameID int64, username string) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	playerIndex, err := c.checkTurn(game, username)
	if err != nil {
		return nil, err
	}

	game.RecordScore(playerIndex, model.TurnScore{})
	game.ConsecutivePasses++
	game.AdvanceTurn()

	if game.ShouldEnd() {
		game.Finish()
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("turn passed",
		slog.Int64("game_id", game.ID),
		slog.String("player", username),
	)

	return game, nil
}

// checkTurn verifies the game is in play and it is this player's turn.
func (c *Controller) checkTurn(game *model.Game, username string) (int, error) {
	switch game.State {
	case model.GamePending:
		return 0, model.ErrGameNotStarted
	case model.GameOver:
		return 0, model.ErrGameOver
	}

	playerIndex, ok := game.PlayerIndexOf(username)
	if !ok {
		return 0, model.ErrNotInGame
	}
	if playerIndex != game.PlayerIndex {
		return 0, model.ErrNotPlayerTurn
	}
	return playerIndex, nil
}
