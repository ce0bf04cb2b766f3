package model

// EventType discriminates the real-time events emitted by a game.
type EventType string

const (
	EventPlayerJoined EventType = "player-joined"
	EventGameStarted  EventType = "game-started"
	EventTurnPlayed   EventType = "turn-played"
	EventTurnPassed   EventType = "turn-passed"
	EventGameOver     EventType = "game-over"
	EventPresence     EventType = "presence"
)

// Event is one real-time update about a game, delivered to stream
// subscribers as JSON.
type Event struct {
	Type     EventType  `json:"type"`
	GameID   int64      `json:"game_id"`
	Player   string     `json:"player,omitempty"`
	Turn     *TurnScore `json:"turn,omitempty"`
	State    GameState  `json:"state,omitempty"`
	Watchers []string   `json:"watchers,omitempty"`
	Winner   string     `json:"winner,omitempty"`
}
