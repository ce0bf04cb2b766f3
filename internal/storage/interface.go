package storage

import (
	"context"

	"github.com/mcoot/scrabble-go/internal/model"
)

// Storage defines the interface for data persistence. Create operations
// assign the record's ID; uniqueness violations surface as the model's
// already-taken errors.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Game operations
	CreateGame(ctx context.Context, game *model.Game) error
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id int64) (*model.Game, error)
	GetGameByName(ctx context.Context, name string) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	DeleteGame(ctx context.Context, id int64) error

	// Close releases the backend's resources.
	Close() error
}
