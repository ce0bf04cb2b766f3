package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case GameList:
		o.printGameList(v)
	case GameState:
		o.printGameState(v)
	case PlayResult:
		o.printPlayResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// GameSummary response type
type GameSummary struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	State   string   `json:"state"`
	Players []string `json:"players"`
}

// GameList wraps the game listing for output formatting
type GameList struct {
	Games []GameSummary `json:"games"`
}

// WordScore response type
type WordScore struct {
	Word   string `json:"word"`
	Points int    `json:"points"`
}

// TurnScore response type
type TurnScore struct {
	Words []WordScore `json:"words"`
}

// PlayerScore response type
type PlayerScore struct {
	Username string      `json:"username"`
	Total    int         `json:"total"`
	Turns    []TurnScore `json:"turns"`
}

// GameState response type
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

// Placement request type
type Placement struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// PlayResult response type
type PlayResult struct {
	Score TurnScore `json:"score"`
	Game  GameState `json:"game"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (#%d)\n", u.Username, u.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGameList(l GameList) {
	if len(l.Games) == 0 {
		fmt.Println("No games")
		return
	}
	for _, g := range l.Games {
		fmt.Printf("%d: %s [%s] - %s\n", g.ID, g.Name, g.State, strings.Join(g.Players, ", "))
	}
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s (#%d)\n", g.Name, g.ID)
	fmt.Printf("State: %s\n", g.State)
	fmt.Printf("Players: %s\n", strings.Join(g.Players, ", "))
	if g.CurrentPlayer != "" {
		fmt.Printf("Current Turn: %s\n", g.CurrentPlayer)
	}
	fmt.Printf("Tiles in Bag: %d\n", g.TilesInBag)

	if len(g.Board) > 0 {
		fmt.Println("\nBoard:")
		o.printBoard(g.Board)
	}

	if len(g.YourRack) > 0 {
		fmt.Printf("\nYour Rack: %s\n", strings.Join(g.YourRack, " "))
	}

	if len(g.Scores) > 0 {
		fmt.Println("\nScores:")
		for _, s := range g.Scores {
			fmt.Printf("  %s: %d points\n", s.Username, s.Total)
		}
	}

	if g.Winner != "" {
		fmt.Printf("\nWinner: %s\n", g.Winner)
	}
}

func (o *Output) printBoard(cells [][]string) {
	size := len(cells)

	// Print column headers
	fmt.Print("    ")
	for col := 0; col < size; col++ {
		fmt.Printf("%3d", col)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Printf("%2d |", row)
		for col := 0; col < size; col++ {
			fmt.Printf("%3s", boardCell(cells[row][col]))
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

// boardCell renders one cell token: letters as-is, bonus squares dimmed to
// their token, blanks shown in lowercase.
func boardCell(cell string) string {
	switch {
	case cell == "":
		return "."
	case strings.HasPrefix(cell, ":"):
		return strings.ToLower(strings.TrimPrefix(cell, ":"))
	default:
		return cell
	}
}

func (o *Output) printPlayResult(p PlayResult) {
	total := 0
	for _, w := range p.Score.Words {
		total += w.Points
	}
	fmt.Printf("Turn scored %d points\n", total)
	for _, w := range p.Score.Words {
		fmt.Printf("  - %s (%d pts)\n", w.Word, w.Points)
	}
	fmt.Println()
	o.printGameState(p.Game)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
