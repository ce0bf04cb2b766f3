package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/scrabble-go/internal/model"
	"github.com/mcoot/scrabble-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Words   []string `json:"words,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameNameTaken      = "GAME_NAME_TAKEN"
	CodeGameNotStarted     = "GAME_NOT_STARTED"
	CodeGameInProgress     = "GAME_IN_PROGRESS"
	CodeGameOver           = "GAME_OVER"
	CodeNoPlayers          = "NO_PLAYERS"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeNotInGame          = "NOT_IN_GAME"
	CodeInvalidTurn        = "INVALID_TURN"
	CodeIllegalWords       = "ILLEGAL_WORDS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Rejected words carry the offending words in the response
	var iwe *model.IllegalWordsError
	if errors.As(err, &iwe) {
		return &httpError{http.StatusUnprocessableEntity, APIError{
			Code:    CodeIllegalWords,
			Message: iwe.Error(),
			Words:   iwe.Words,
		}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeUserNotFound, Message: "User not found"}}
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{Code: CodeUsernameTaken, Message: "Username already taken"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeGameNotFound, Message: "Game not found"}}
	case errors.Is(err, model.ErrGameNameTaken):
		return &httpError{http.StatusConflict, APIError{Code: CodeGameNameTaken, Message: "Game name already taken"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{http.StatusConflict, APIError{Code: CodeGameNotStarted, Message: "Game has not started"}}
	case errors.Is(err, model.ErrGameStarted):
		return &httpError{http.StatusConflict, APIError{Code: CodeGameInProgress, Message: "Game has already started"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{Code: CodeGameOver, Message: "Game is over"}}
	case errors.Is(err, model.ErrNoPlayers):
		return &httpError{http.StatusConflict, APIError{Code: CodeNoPlayers, Message: "Game has no players"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{Code: CodeNotYourTurn, Message: "Not your turn"}}
	case errors.Is(err, model.ErrNotInGame):
		return &httpError{http.StatusForbidden, APIError{Code: CodeNotInGame, Message: "You are not in this game"}}
	case errors.Is(err, model.ErrTurnEmpty),
		errors.Is(err, model.ErrTurnIndexesNotUnique),
		errors.Is(err, model.ErrTurnNotLinear),
		errors.Is(err, model.ErrSquareOccupied),
		errors.Is(err, model.ErrNotConnected),
		errors.Is(err, model.ErrPositionOutOfBounds),
		errors.Is(err, model.ErrTileHasNoLetter),
		errors.Is(err, model.ErrTileNotInRack):
		return &httpError{http.StatusUnprocessableEntity, APIError{Code: CodeInvalidTurn, Message: err.Error()}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeInvalidCredentials, Message: "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
