package model

import (
	"time"

	"github.com/mcoot/scrabble-go/internal/dependencies/random"
)

// GameState is the lifecycle phase of a game.
type GameState string

const (
	// GamePending is a game that is accepting players but has not started.
	GamePending GameState = "pending"
	// GameStarted is a game in progress.
	GameStarted GameState = "started"
	// GameOver is a finished game.
	GameOver GameState = "over"
)

// RemainingTilesEntry labels the end-of-game deduction for tiles left on a
// player's rack.
const RemainingTilesEntry = "(remaining tiles)"

// WordScore is the points earned by one word in a turn.
type WordScore struct {
	Word   string `json:"word"`
	Points int    `json:"points"`
}

// TurnScore is the scoring result of one turn. A passed turn records an
// empty word list.
type TurnScore struct {
	Words []WordScore `json:"words"`
}

// Total sums the turn's word scores.
func (t TurnScore) Total() int {
	total := 0
	for _, word := range t.Words {
		total += word.Points
	}
	return total
}

// Game is the full state of one game. Players, racks and score histories are
// parallel slices indexed by join order.
type Game struct {
	ID                int64         `json:"id"`
	Name              string        `json:"name"`
	State             GameState     `json:"state"`
	Board             *Board        `json:"board"`
	Players           []string      `json:"players"`
	PlayerIndex       int           `json:"player_index"`
	Bag               Bag           `json:"bag"`
	Racks             []Rack        `json:"racks"`
	Scores            [][]TurnScore `json:"scores"`
	ConsecutivePasses int           `json:"consecutive_passes"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// NewGame creates an empty pending game with a shuffled standard bag.
func NewGame(name string, rnd random.Random, now time.Time) *Game {
	bag := StandardBag()
	bag.Shuffle(rnd)
	return &Game{
		Name:      name,
		State:     GamePending,
		Board:     StandardBoard(),
		Bag:       bag,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PlayerIndexOf returns the join-order index of a player.
func (g *Game) PlayerIndexOf(username string) (int, bool) {
	for i, player := range g.Players {
		if player == username {
			return i, true
		}
	}
	return 0, false
}

// CurrentPlayer returns whose turn it is.
func (g *Game) CurrentPlayer() string {
	if len(g.Players) == 0 {
		return ""
	}
	return g.Players[g.PlayerIndex]
}

// AddPlayer joins a player to a pending game and deals their rack. A player
// already in the game re-attaches as a no-op, even after the game has
// started; only genuinely new players are rejected once play begins.
func (g *Game) AddPlayer(username string) error {
	if _, ok := g.PlayerIndexOf(username); ok {
		return nil
	}
	if g.State != GamePending {
		return ErrGameStarted
	}
	g.Players = append(g.Players, username)
	g.Racks = append(g.Racks, nil)
	g.Scores = append(g.Scores, nil)
	g.FillRack(len(g.Players) - 1)
	return nil
}

// FillRack draws from the bag until the player's rack is full or the bag is
// empty.
func (g *Game) FillRack(playerIndex int) {
	rack := g.Racks[playerIndex]
	for len(rack) < RackSize {
		tile, ok := g.Bag.Pop()
		if !ok {
			break
		}
		rack = append(rack, tile)
	}
	g.Racks[playerIndex] = rack
}

// Start moves a pending game into play, topping up every rack and picking a
// random starting player.
func (g *Game) Start(rnd random.Random) error {
	if g.State == GameStarted {
		return ErrGameStarted
	}
	if g.State == GameOver {
		return ErrGameOver
	}
	if len(g.Players) == 0 {
		return ErrNoPlayers
	}
	for i := range g.Players {
		g.FillRack(i)
	}
	g.PlayerIndex = rnd.Intn(len(g.Players))
	g.State = GameStarted
	return nil
}

// SpendTurn removes the turn's tiles from the player's rack. A blank played
// as a letter spends a blank. The rack is untouched on error.
func (g *Game) SpendTurn(playerIndex int, turn *Turn) error {
	rack := make(Rack, len(g.Racks[playerIndex]))
	copy(rack, g.Racks[playerIndex])

	for _, placement := range turn.Placements {
		found := -1
		for i, tile := range rack {
			if tile.Blank == placement.Tile.Blank &&
				(tile.Blank || tile.Letter == placement.Tile.Letter) {
				found = i
				break
			}
		}
		if found < 0 {
			return ErrTileNotInRack
		}
		rack = append(rack[:found], rack[found+1:]...)
	}

	g.Racks[playerIndex] = rack
	return nil
}

// RecordScore appends a turn score to the player's history.
func (g *Game) RecordScore(playerIndex int, score TurnScore) {
	g.Scores[playerIndex] = append(g.Scores[playerIndex], score)
}

// TotalScore sums a player's score history.
func (g *Game) TotalScore(playerIndex int) int {
	total := 0
	for _, score := range g.Scores[playerIndex] {
		total += score.Total()
	}
	return total
}

// AdvanceTurn passes play to the next player in join order.
func (g *Game) AdvanceTurn() {
	g.PlayerIndex = (g.PlayerIndex + 1) % len(g.Players)
}

// ShouldEnd reports whether the game is over: the bag is exhausted and some
// player has emptied their rack, or every player has passed twice in a row.
func (g *Game) ShouldEnd() bool {
	if g.ConsecutivePasses >= 2*len(g.Players) && len(g.Players) > 0 {
		return true
	}
	if len(g.Bag) > 0 {
		return false
	}
	for _, rack := range g.Racks {
		if len(rack) == 0 {
			return true
		}
	}
	return false
}

// Finish ends the game, deducting the value of each player's remaining
// tiles from their score.
func (g *Game) Finish() {
	for i, rack := range g.Racks {
		penalty := 0
		for _, tile := range rack {
			penalty += tile.Score()
		}
		if penalty > 0 {
			g.RecordScore(i, TurnScore{Words: []WordScore{
				{Word: RemainingTilesEntry, Points: -penalty},
			}})
		}
	}
	g.State = GameOver
}

// Winner returns the player with the highest total score. Ties go to the
// earlier joiner.
func (g *Game) Winner() (string, bool) {
	if g.State != GameOver || len(g.Players) == 0 {
		return "", false
	}
	best := 0
	for i := range g.Players[1:] {
		if g.TotalScore(i+1) > g.TotalScore(best) {
			best = i + 1
		}
	}
	return g.Players[best], true
}
