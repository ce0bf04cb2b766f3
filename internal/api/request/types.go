package request

import (
	"fmt"
	"unicode"

	"github.com/mcoot/scrabble-go/internal/model"
)

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username             string `json:"username"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Name string `json:"name"`
}

// PlacementRequest is one tile placed at a board position
type PlacementRequest struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// PlayRequest is the request body for playing a turn
type PlayRequest struct {
	Placements []PlacementRequest `json:"placements"`
}

// Turn converts the request into a model turn, validating each placement's
// position and letter.
func (r PlayRequest) Turn() (*model.Turn, error) {
	turn := &model.Turn{}
	for _, p := range r.Placements {
		if p.Row < 0 || p.Row >= model.BoardSize || p.Col < 0 || p.Col >= model.BoardSize {
			return nil, fmt.Errorf("position (%d, %d) is off the board", p.Row, p.Col)
		}

		runes := []rune(p.Letter)
		if len(runes) != 1 {
			return nil, fmt.Errorf("letter %q must be a single character", p.Letter)
		}
		letter := unicode.ToUpper(runes[0])
		if letter < 'A' || letter > 'Z' {
			return nil, fmt.Errorf("letter %q must be A-Z", p.Letter)
		}

		tile := model.LetterTile(letter)
		if p.Blank {
			tile = model.BlankAs(letter)
		}
		turn.Placements = append(turn.Placements, model.Placement{
			Index: p.Row*model.BoardSize + p.Col,
			Tile:  tile,
		})
	}
	return turn, nil
}
