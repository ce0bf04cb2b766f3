package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/scrabble-go/internal/model"
	"github.com/mcoot/scrabble-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	nextUserID int64
	nextGameID int64

	users         map[int64]*model.User
	usernameIndex map[string]int64
	games         map[int64]*model.Game
	gameNameIndex map[string]int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[int64]*model.User),
		usernameIndex: make(map[string]int64),
		games:         make(map[int64]*model.Game),
		gameNameIndex: make(map[string]int64),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.usernameIndex[user.Username]; taken {
		return model.ErrUsernameTaken
	}
	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.users[id], nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.gameNameIndex[game.Name]; taken {
		return model.ErrGameNameTaken
	}
	s.nextGameID++
	game.ID = s.nextGameID
	s.games[game.ID] = game
	s.gameNameIndex[game.Name] = game.ID
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[game.ID]; !ok {
		return model.ErrGameNotFound
	}
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id int64) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.gameNameIndex[name]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return s.games[id], nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game, ok := s.games[id]; ok {
		delete(s.gameNameIndex, game.Name)
	}
	delete(s.games, id)
	return nil
}

// Close is a no-op for the in-memory backend.
func (s *Storage) Close() error {
	return nil
}
