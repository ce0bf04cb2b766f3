package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scrabble-go/internal/api"
	"github.com/mcoot/scrabble-go/internal/api/apierr"
	"github.com/mcoot/scrabble-go/internal/api/response"
	"github.com/mcoot/scrabble-go/internal/factory"
	"github.com/mcoot/scrabble-go/internal/model"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()
	app.LoadTestDictionary()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		HubManager:     app.HubManager,
		Broadcaster:    app.Broadcaster,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{
		"username":              "alice",
		"password":              "secret123",
		"password_confirmation": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/users/register", body, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{
			name: "missing username",
			body: map[string]string{"password": "secret123", "password_confirmation": "secret123"},
		},
		{
			name: "missing password",
			body: map[string]string{"username": "alice"},
		},
		{
			name: "mismatched confirmation",
			body: map[string]string{"username": "alice", "password": "secret123", "password_confirmation": "different"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/users/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts, "alice")

	body := map[string]string{
		"username":              "alice",
		"password":              "different456",
		"password_confirmation": "different456",
	}
	rr := ts.request(http.MethodPost, "/api/v1/users/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeUsernameTaken, errorCode(t, rr))
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts, "alice")

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/users/login", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.SessionToken)

	// Wrong password
	body["password"] = "wrong"
	rr = ts.request(http.MethodPost, "/api/v1/users/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, errorCode(t, rr))

	// Unknown user
	body = map[string]string{"username": "mallory", "password": "secret123"}
	rr = ts.request(http.MethodPost, "/api/v1/users/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, errorCode(t, rr))
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "bob")

	rr := ts.request(http.MethodGet, "/api/v1/users/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.User
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.Username)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/users/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// The session is gone
	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games", map[string]string{"name": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateGame(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]string{"name": "friday-night"}, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.GameState
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "friday-night", resp.Name)
	assert.Equal(t, "pending", resp.State)
	assert.Equal(t, []string{"alice"}, resp.Players)
	assert.Len(t, resp.Board, model.BoardSize)
	assert.Len(t, resp.YourRack, model.RackSize)

	// Names are unique
	rr = ts.request(http.MethodPost, "/api/v1/games", map[string]string{"name": "friday-night"}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameNameTaken, errorCode(t, rr))

	// A name is required
	rr = ts.request(http.MethodPost, "/api/v1/games", map[string]string{}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListGames(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "alice")
	createGame(t, ts, token, "first")
	createGame(t, ts, token, "second")

	rr := ts.request(http.MethodGet, "/api/v1/games", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []response.GameSummary
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "first", resp[0].Name)
	assert.Equal(t, "second", resp[1].Name)
}

func TestSpectatorCanViewGames(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "alice")
	game := createGame(t, ts, token, "friday-night")

	// Anyone can list and view games without a session
	rr := ts.request(http.MethodGet, "/api/v1/games", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, fmt.Sprintf("/api/v1/games/%d", game.ID), nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var spectator response.GameState
	err := json.Unmarshal(rr.Body.Bytes(), &spectator)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, spectator.Players)
	assert.Empty(t, spectator.YourRack)

	// A player viewing the same game still sees their rack
	rr = ts.request(http.MethodGet, fmt.Sprintf("/api/v1/games/%d", game.ID), nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var player response.GameState
	err = json.Unmarshal(rr.Body.Bytes(), &player)
	require.NoError(t, err)
	assert.Len(t, player.YourRack, model.RackSize)
}

func TestGetGameNotFound(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "alice")

	rr := ts.request(http.MethodGet, "/api/v1/games/999", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/games/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestJoinAndStartGame(t *testing.T) {
	ts := newTestServer(t)

	aliceToken := registerUser(t, ts, "alice")
	bobToken := registerUser(t, ts, "bob")
	charlieToken := registerUser(t, ts, "charlie")

	game := createGame(t, ts, aliceToken, "friday-night")
	path := fmt.Sprintf("/api/v1/games/%d", game.ID)

	// Only members can start
	rr := ts.request(http.MethodPost, path+"/start", nil, charlieToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotInGame, errorCode(t, rr))

	// Bob joins
	rr = ts.request(http.MethodPost, path+"/join", nil, bobToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var joinResp response.GameState
	err := json.Unmarshal(rr.Body.Bytes(), &joinResp)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, joinResp.Players)
	assert.Len(t, joinResp.YourRack, model.RackSize)

	// Alice starts
	rr = ts.request(http.MethodPost, path+"/start", nil, aliceToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var startResp response.GameState
	err = json.Unmarshal(rr.Body.Bytes(), &startResp)
	require.NoError(t, err)
	assert.Equal(t, "started", startResp.State)
	assert.NotEmpty(t, startResp.CurrentPlayer)

	// Nobody can join once play has begun
	rr = ts.request(http.MethodPost, path+"/join", nil, charlieToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameInProgress, errorCode(t, rr))
}

func TestPlayTurns(t *testing.T) {
	ts := newTestServer(t)

	aliceToken := registerUser(t, ts, "alice")
	bobToken := registerUser(t, ts, "bob")

	game, path := newStartedGame(t, ts, aliceToken, bobToken)
	assert.Equal(t, "alice", game.CurrentPlayer)
	assert.Equal(t, []string{"S", "M", "A", "R", "T", "I", "L"}, game.YourRack)
	assert.Equal(t, 1, game.TilesInBag)

	// Alice opens with MAR through the center
	rr := ts.request(http.MethodPost, path+"/play", playBody(
		placement(7, 7, "M"),
		placement(7, 8, "A"),
		placement(7, 9, "R"),
	), aliceToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var playResp response.PlayResponse
	err := json.Unmarshal(rr.Body.Bytes(), &playResp)
	require.NoError(t, err)
	assert.Equal(t, 10, playResp.Score.Total())
	assert.Equal(t, "bob", playResp.Game.CurrentPlayer)
	assert.Equal(t, []string{"S", "T", "I", "L", "Q"}, playResp.Game.YourRack)
	assert.Equal(t, 0, playResp.Game.TilesInBag)

	// Bob hooks TAX beneath it, crossing MA and AX
	rr = ts.request(http.MethodPost, path+"/play", playBody(
		placement(8, 6, "T"),
		placement(8, 7, "A"),
		placement(8, 8, "X"),
	), bobToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	err = json.Unmarshal(rr.Body.Bytes(), &playResp)
	require.NoError(t, err)
	assert.Equal(t, 40, playResp.Score.Total())
	require.Len(t, playResp.Score.Words, 3)
	assert.Equal(t, "TAX", playResp.Score.Words[0].Word)

	require.Len(t, playResp.Game.Scores, 2)
	assert.Equal(t, 10, playResp.Game.Scores[0].Total)
	assert.Equal(t, 40, playResp.Game.Scores[1].Total)
}

func TestPlayRejectsInvalidTurn(t *testing.T) {
	ts := newTestServer(t)

	aliceToken := registerUser(t, ts, "alice")
	bobToken := registerUser(t, ts, "bob")

	_, path := newStartedGame(t, ts, aliceToken, bobToken)

	// Not in a single row or column
	rr := ts.request(http.MethodPost, path+"/play", playBody(
		placement(7, 7, "M"),
		placement(8, 8, "A"),
	), aliceToken)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, apierr.CodeInvalidTurn, errorCode(t, rr))

	// A tile alice does not hold
	rr = ts.request(http.MethodPost, path+"/play", playBody(
		placement(7, 7, "Z"),
	), aliceToken)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, apierr.CodeInvalidTurn, errorCode(t, rr))

	// A malformed letter never reaches the game
	rr = ts.request(http.MethodPost, path+"/play", playBody(
		placement(7, 7, "MM"),
	), aliceToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestPlayRejectsIllegalWords(t *testing.T) {
	ts := newTestServer(t)

	aliceToken := registerUser(t, ts, "alice")
	bobToken := registerUser(t, ts, "bob")

	_, path := newStartedGame(t, ts, aliceToken, bobToken)

	// RAM is not in the dictionary; MAR is
	rr := ts.request(http.MethodPost, path+"/play", playBody(
		placement(7, 7, "R"),
		placement(7, 8, "A"),
		placement(7, 9, "M"),
	), aliceToken)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp apierr.ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, apierr.CodeIllegalWords, resp.Error.Code)
	assert.Equal(t, []string{"RAM"}, resp.Error.Words)

	// The turn was not committed; alice can still play
	rr = ts.request(http.MethodPost, path+"/play", playBody(
		placement(7, 7, "M"),
		placement(7, 8, "A"),
		placement(7, 9, "R"),
	), aliceToken)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPlayTurnOrderAndMembership(t *testing.T) {
	ts := newTestServer(t)

	aliceToken := registerUser(t, ts, "alice")
	bobToken := registerUser(t, ts, "bob")
	charlieToken := registerUser(t, ts, "charlie")

	_, path := newStartedGame(t, ts, aliceToken, bobToken)

	// It is alice's turn, not bob's
	rr := ts.request(http.MethodPost, path+"/play", playBody(
		placement(7, 7, "X"),
	), bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotYourTurn, errorCode(t, rr))

	// Charlie is not in the game at all
	rr = ts.request(http.MethodPost, path+"/play", playBody(
		placement(7, 7, "A"),
	), charlieToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotInGame, errorCode(t, rr))
}

func TestPlayBeforeStart(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "alice")
	game := createGame(t, ts, token, "friday-night")

	rr := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/games/%d/play", game.ID), playBody(
		placement(7, 7, "A"),
	), token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameNotStarted, errorCode(t, rr))
}

func TestPass(t *testing.T) {
	ts := newTestServer(t)

	aliceToken := registerUser(t, ts, "alice")
	bobToken := registerUser(t, ts, "bob")

	_, path := newStartedGame(t, ts, aliceToken, bobToken)

	rr := ts.request(http.MethodPost, path+"/pass", nil, aliceToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.GameState
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.CurrentPlayer)

	// An empty scoring turn is recorded for the pass
	require.Len(t, resp.Scores, 2)
	require.Len(t, resp.Scores[0].Turns, 1)
	assert.Equal(t, 0, resp.Scores[0].Turns[0].Total())
}

func TestEventsRequireExistingGame(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "alice")

	rr := ts.request(http.MethodGet, "/api/v1/games/999/events", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, errorCode(t, rr))
}

// Helper functions

func registerUser(t *testing.T, ts *testServer, username string) string {
	t.Helper()

	body := map[string]string{
		"username":              username,
		"password":              "secret123",
		"password_confirmation": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/users/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.SessionToken
}

func createGame(t *testing.T, ts *testServer, token, name string) response.GameState {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]string{"name": name}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.GameState
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

// newStartedGame creates a two-player game for alice and bob over a known
// bag, started with alice to move. Tiles are drawn from the end of the bag,
// so alice holds [S M A R T I L], bob holds [X E I T S P A] and one Q
// remains. The in-memory store hands back live game state, which lets the
// test swap the bag in before bob joins.
func newStartedGame(t *testing.T, ts *testServer, aliceToken, bobToken string) (response.GameState, string) {
	t.Helper()

	game := createGame(t, ts, aliceToken, "friday-night")
	path := fmt.Sprintf("/api/v1/games/%d", game.ID)

	stored, err := ts.app.Storage.GetGame(context.Background(), game.ID)
	require.NoError(t, err)
	stored.Bag = model.Bag{
		model.LetterTile('Q'), model.LetterTile('A'), model.LetterTile('P'),
		model.LetterTile('S'), model.LetterTile('T'), model.LetterTile('I'),
		model.LetterTile('E'), model.LetterTile('X'), model.LetterTile('L'),
		model.LetterTile('I'), model.LetterTile('T'), model.LetterTile('R'),
		model.LetterTile('A'), model.LetterTile('M'), model.LetterTile('S'),
	}
	stored.Racks[0] = nil
	stored.FillRack(0)

	rr := ts.request(http.MethodPost, path+"/join", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, path+"/start", nil, aliceToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.GameState
	err = json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp, path
}

func placement(row, col int, letter string) map[string]any {
	return map[string]any{"row": row, "col": col, "letter": letter}
}

func playBody(placements ...map[string]any) map[string]any {
	return map[string]any{"placements": placements}
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var resp apierr.ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp.Error.Code
}
