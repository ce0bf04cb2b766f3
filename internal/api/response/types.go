package response

import (
	"fmt"

	"github.com/mcoot/scrabble-go/internal/model"
	"github.com/mcoot/scrabble-go/internal/services/auth"
)

// User represents a user in API responses
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(&s.User),
		SessionToken: s.Token,
	}
}

// PlayerScore is one player's score line in a game
type PlayerScore struct {
	Username string            `json:"username"`
	Total    int               `json:"total"`
	Turns    []model.TurnScore `json:"turns"`
}

// GameSummary is the list view of a game
type GameSummary struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	State   string   `json:"state"`
	Players []string `json:"players"`
}

// GameSummaryFromModel converts a model.Game to a list summary
func GameSummaryFromModel(g *model.Game) GameSummary {
	return GameSummary{
		ID:      g.ID,
		Name:    g.Name,
		State:   string(g.State),
		Players: g.Players,
	}
}

// GameState is the full view of a game as seen by one player. Only the
// viewer's own rack is included.
type GameState struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	State         string        `json:"state"`
	Players       []string      `json:"players"`
	CurrentPlayer string        `json:"current_player,omitempty"`
	Board         [][]string    `json:"board"`
	YourRack      []string      `json:"your_rack,omitempty"`
	TilesInBag    int           `json:"tiles_in_bag"`
	Scores        []PlayerScore `json:"scores"`
	Winner        string        `json:"winner,omitempty"`
}

// GameStateFromModel converts model.Game to the view for one player. The
// viewer may be empty for spectators, who see no rack.
func GameStateFromModel(g *model.Game, viewer string) GameState {
	state := GameState{
		ID:         g.ID,
		Name:       g.Name,
		State:      string(g.State),
		Players:    g.Players,
		Board:      boardCells(g.Board),
		TilesInBag: len(g.Bag),
	}

	if g.State == model.GameStarted {
		state.CurrentPlayer = g.CurrentPlayer()
	}

	if index, ok := g.PlayerIndexOf(viewer); ok {
		rack := make([]string, len(g.Racks[index]))
		for i, tile := range g.Racks[index] {
			rack[i] = tile.String()
		}
		state.YourRack = rack
	}

	for i, player := range g.Players {
		state.Scores = append(state.Scores, PlayerScore{
			Username: player,
			Total:    g.TotalScore(i),
			Turns:    g.Scores[i],
		})
	}

	if winner, ok := g.Winner(); ok {
		state.Winner = winner
	}

	return state
}

// boardCells renders the board as a 15x15 grid of cell tokens: empty string
// for an open square, "2l"/"3l"/"2w"/"3w" for bonuses, the letter for a
// tile, and ":X" for a blank played as X.
func boardCells(b *model.Board) [][]string {
	cells := make([][]string, model.BoardSize)
	for row := 0; row < model.BoardSize; row++ {
		cells[row] = make([]string, model.BoardSize)
		for col := 0; col < model.BoardSize; col++ {
			square, _ := b.Square(row*model.BoardSize + col)
			cells[row][col] = cellToken(square)
		}
	}
	return cells
}

func cellToken(square model.Square) string {
	switch square.Kind {
	case model.SquareTile:
		if square.Tile.Blank {
			return ":" + string(square.Tile.Letter)
		}
		return string(square.Tile.Letter)
	case model.SquareLetterBonus:
		return fmt.Sprintf("%dl", square.Multiplier)
	case model.SquareWordBonus:
		return fmt.Sprintf("%dw", square.Multiplier)
	default:
		return ""
	}
}

// PlayResponse is the response after playing a turn
type PlayResponse struct {
	Score model.TurnScore `json:"score"`
	Game  GameState       `json:"game"`
}
