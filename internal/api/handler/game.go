package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/scrabble-go/internal/api/middleware"
	"github.com/mcoot/scrabble-go/internal/api/request"
	"github.com/mcoot/scrabble-go/internal/api/response"
	"github.com/mcoot/scrabble-go/internal/model"
	"github.com/mcoot/scrabble-go/internal/services/game"
	"github.com/mcoot/scrabble-go/internal/sse"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	hubManager     *sse.HubManager
	broadcaster    *sse.Broadcaster
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, hubManager *sse.HubManager, broadcaster *sse.Broadcaster) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		broadcaster:    broadcaster,
	}
}

// gameID extracts the {id} path variable
func gameID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("game id must be a number")
	}
	return id, nil
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), req.Name, user.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromModel(g, user.Username))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	summaries := make([]response.GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, response.GameSummaryFromModel(g))
	}
	response.JSON(w, http.StatusOK, summaries)
}

// Get handles GET /api/v1/games/{id}. Spectators without a session get
// the public view; a logged-in player additionally sees their own rack.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer := ""
	if user := middleware.GetUser(r.Context()); user != nil {
		viewer = user.Username
	}

	id, err := gameID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, viewer))
}

// Join handles POST /api/v1/games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, err := gameID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.JoinGame(r.Context(), id, user.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastPlayerJoined(g, user.Username)
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, user.Username))
}

// Start handles POST /api/v1/games/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, err := gameID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.StartGame(r.Context(), id, user.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastGameStarted(g)
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, user.Username))
}

// Play handles POST /api/v1/games/{id}/play
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, err := gameID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	turn, err := req.Turn()
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	g, score, err := h.gameController.Play(r.Context(), id, user.Username, turn)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastTurnPlayed(g, user.Username, score)
	if g.State == model.GameOver {
		h.broadcaster.BroadcastGameOver(g)
	}

	response.JSON(w, http.StatusOK, response.PlayResponse{
		Score: score,
		Game:  response.GameStateFromModel(g, user.Username),
	})
}

// Pass handles POST /api/v1/games/{id}/pass
func (h *GameHandler) Pass(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, err := gameID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.Pass(r.Context(), id, user.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastTurnPassed(g, user.Username)
	if g.State == model.GameOver {
		h.broadcaster.BroadcastGameOver(g)
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, user.Username))
}

// Events handles GET /api/v1/games/{id}/events (SSE stream)
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, err := gameID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	// The game must exist before we open a stream for it
	if _, err := h.gameController.GetGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, user.Username)
}
