package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/scrabble-go/internal/model"
)

// Broadcaster pushes game events to SSE clients as JSON
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastPlayerJoined announces a new player to a game's watchers
func (b *Broadcaster) BroadcastPlayerJoined(game *model.Game, player string) {
	b.send(model.Event{
		Type:   model.EventPlayerJoined,
		GameID: game.ID,
		Player: player,
		State:  game.State,
	})
}

// BroadcastGameStarted announces that the game has begun
func (b *Broadcaster) BroadcastGameStarted(game *model.Game) {
	b.send(model.Event{
		Type:   model.EventGameStarted,
		GameID: game.ID,
		Player: game.CurrentPlayer(),
		State:  game.State,
	})
}

// BroadcastTurnPlayed announces a scored turn
func (b *Broadcaster) BroadcastTurnPlayed(game *model.Game, player string, score model.TurnScore) {
	b.send(model.Event{
		Type:   model.EventTurnPlayed,
		GameID: game.ID,
		Player: player,
		Turn:   &score,
		State:  game.State,
	})
}

// BroadcastTurnPassed announces a passed turn
func (b *Broadcaster) BroadcastTurnPassed(game *model.Game, player string) {
	b.send(model.Event{
		Type:   model.EventTurnPassed,
		GameID: game.ID,
		Player: player,
		State:  game.State,
	})
}

// BroadcastGameOver announces the end of the game and its winner
func (b *Broadcaster) BroadcastGameOver(game *model.Game) {
	winner, _ := game.Winner()
	b.send(model.Event{
		Type:   model.EventGameOver,
		GameID: game.ID,
		State:  game.State,
		Winner: winner,
	})
}

func (b *Broadcaster) send(event model.Event) {
	hub := b.hubManager.GetHub(event.GameID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("sse failed to marshal event",
			slog.Int64("game_id", event.GameID),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(string(event.Type), string(data))
}
