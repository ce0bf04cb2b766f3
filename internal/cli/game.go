package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGamePassCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}
			var result GameState

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []GameSummary

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(GameList{Games: result})
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/games/"+args[0]+"/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/games/"+args[0]+"/start", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <id> <row,col,letter>...",
		Short: "Play a turn",
		Long: `Play a turn by placing tiles on the board.

Each placement is given as row,col,letter with zero-based coordinates,
for example:

  scrabble game play 3 7,7,C 7,8,A 7,9,T

Prefix the letter with a colon to play a blank tile as that letter:

  scrabble game play 3 7,10,:S`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			placements := make([]Placement, 0, len(args)-1)
			for _, arg := range args[1:] {
				placement, err := parsePlacement(arg)
				if err != nil {
					return err
				}
				placements = append(placements, placement)
			}

			req := map[string]any{"placements": placements}
			var result PlayResult

			if err := client.Post("/api/v1/games/"+args[0]+"/play", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	return cmd
}

func newGamePassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass <id>",
		Short: "Pass your turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/games/"+args[0]+"/pass", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// parsePlacement parses a row,col,letter argument. A leading colon on the
// letter marks a blank tile.
func parsePlacement(arg string) (Placement, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return Placement{}, fmt.Errorf("invalid placement %q: expected row,col,letter", arg)
	}

	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return Placement{}, fmt.Errorf("invalid row in placement %q", arg)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return Placement{}, fmt.Errorf("invalid col in placement %q", arg)
	}

	letter := parts[2]
	blank := false
	if strings.HasPrefix(letter, ":") {
		blank = true
		letter = strings.TrimPrefix(letter, ":")
	}
	if len(letter) != 1 {
		return Placement{}, fmt.Errorf("invalid letter in placement %q", arg)
	}

	return Placement{
		Row:    row,
		Col:    col,
		Letter: strings.ToUpper(letter),
		Blank:  blank,
	}, nil
}
