package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/scrabble-go/internal/model"
	"github.com/mcoot/scrabble-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	id, err := s.client.Incr(ctx, userSeqKey()).Result()
	if err != nil {
		return err
	}
	user.ID = id

	// Claim the username first; losing the claim means it is taken
	claimed, err := s.client.SetNX(ctx, usernameIndexKey(user.Username), strconv.FormatInt(id, 10), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrUsernameTaken
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(id), data, 0).Err()
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	id, err := s.client.Incr(ctx, gameSeqKey()).Result()
	if err != nil {
		return err
	}
	game.ID = id

	claimed, err := s.client.SetNX(ctx, gameNameIndexKey(game.Name), strconv.FormatInt(id, 10), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrGameNameTaken
	}

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Pipeline the value write and the games index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(id), data, 0)
	pipe.SAdd(ctx, gamesIndexKey(), strconv.FormatInt(id, 10))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	exists, err := s.client.Exists(ctx, gameKey(game.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrGameNotFound
	}

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, gameKey(game.ID), data, 0).Err()
}

func (s *Storage) GetGame(ctx context.Context, id int64) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	idStr, err := s.client.Get(ctx, gameNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, err
	}
	return s.GetGame(ctx, id)
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, err
		}
		keys = append(keys, gameKey(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(values))
	for _, value := range values {
		// Index entries can outlive deleted games briefly
		str, ok := value.(string)
		if !ok {
			continue
		}
		var game model.Game
		if err := json.Unmarshal([]byte(str), &game); err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id int64) error {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.Del(ctx, gameNameIndexKey(game.Name))
	pipe.SRem(ctx, gamesIndexKey(), strconv.FormatInt(id, 10))
	_, err = pipe.Exec(ctx)
	return err
}
