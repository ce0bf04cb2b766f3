package model

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")

	// Game errors
	ErrGameNotFound   = errors.New("game not found")
	ErrGameNameTaken  = errors.New("game name already taken")
	ErrGameNotStarted = errors.New("game has not started")
	ErrGameStarted    = errors.New("game has already started")
	ErrGameOver       = errors.New("game is over")
	ErrNotPlayerTurn  = errors.New("not this player's turn")
	ErrNotInGame      = errors.New("player is not in this game")
	ErrNoPlayers      = errors.New("game has no players")

	// Turn errors
	ErrTileNotInRack        = errors.New("tile is not in the player's rack")
	ErrTurnIndexesNotUnique = errors.New("turn positions are not unique")
	ErrTurnNotLinear        = errors.New("turn is not in a single row or column")
	ErrTurnEmpty            = errors.New("turn has no placements")
	ErrSquareOccupied       = errors.New("square is already occupied")
	ErrNotConnected         = errors.New("turn does not connect to the board")
	ErrPositionOutOfBounds  = errors.New("position is off the board")
	ErrTileHasNoLetter      = errors.New("tile has no letter assigned")

	// Board errors
	ErrBoardParse = errors.New("could not parse board")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)

// IllegalWordsError reports a turn rejected because it forms words that are
// not in the dictionary.
type IllegalWordsError struct {
	Words []string
}

func (e *IllegalWordsError) Error() string {
	return fmt.Sprintf("illegal words: %s", strings.Join(e.Words, ", "))
}
