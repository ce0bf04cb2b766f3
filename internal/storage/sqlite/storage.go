package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mcoot/scrabble-go/internal/model"
	"github.com/mcoot/scrabble-go/internal/storage"
	"github.com/mcoot/scrabble-go/internal/storage/sqlite/migrate"
	"github.com/mcoot/scrabble-go/internal/storage/sqlite/migrations"
)

// Storage is a SQLite-backed implementation of the storage interface. Games
// are stored as a row per game with the full state serialized into the data
// column; users map directly onto their table.
type Storage struct {
	sqlDB *sql.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Open opens (or creates) the SQLite database at path and applies bundled
// migrations.
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := migrate.Apply(sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Storage{sqlDB: sqlDB}, nil
}

// DB returns the raw database handle.
func (s *Storage) DB() *sql.DB {
	return s.sqlDB
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.sqlDB.Close()
}

// uniqueViolation maps SQLite unique-index failures on the given column to a
// model error, passing other errors through.
func uniqueViolation(err error, column string, mapped error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), column) {
		return mapped
	}
	return err
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	result, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO users (username, hashed_password) VALUES (?, ?)",
		user.Username, user.PasswordHash,
	)
	if err != nil {
		return uniqueViolation(err, "users.username", model.ErrUsernameTaken)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, username, hashed_password FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, username, hashed_password FROM users WHERE username = ?", username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Insert first to learn the assigned ID, then serialize with it
	result, err := tx.ExecContext(ctx, "INSERT INTO games (name) VALUES (?)", game.Name)
	if err != nil {
		return uniqueViolation(err, "games.name", model.ErrGameNameTaken)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	game.ID = id

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE games SET data = ? WHERE id = ?", string(data), id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	result, err := s.sqlDB.ExecContext(ctx,
		"UPDATE games SET data = ? WHERE id = ?", string(data), game.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id int64) (*model.Game, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, name, data FROM games WHERE id = ?", id)
	return scanGame(row)
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, name, data FROM games WHERE name = ?", name)
	return scanGame(row)
}

func scanGame(row *sql.Row) (*model.Game, error) {
	var (
		id   int64
		name string
		data sql.NullString
	)
	if err := row.Scan(&id, &name, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return gameFromRow(id, name, data)
}

// gameFromRow rebuilds a game from its serialized data. A row with no data
// is still a valid, empty game.
func gameFromRow(id int64, name string, data sql.NullString) (*model.Game, error) {
	if !data.Valid {
		return &model.Game{ID: id, Name: name, State: model.GamePending}, nil
	}

	var game model.Game
	if err := json.Unmarshal([]byte(data.String), &game); err != nil {
		return nil, err
	}
	// The row is authoritative for identity
	game.ID = id
	game.Name = name
	return &game, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT id, name, data FROM games ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*model.Game
	for rows.Next() {
		var (
			id   int64
			name string
			data sql.NullString
		)
		if err := rows.Scan(&id, &name, &data); err != nil {
			return nil, err
		}
		game, err := gameFromRow(id, name, data)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func (s *Storage) DeleteGame(ctx context.Context, id int64) error {
	_, err := s.sqlDB.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	return err
}
