package model

import (
	"fmt"
	"strings"
)

const (
	// BoardSize is the dimension of the standard board.
	BoardSize = 15
	// BoardCenter is the flat index of the center square, where the first
	// play must land.
	BoardCenter = BoardSize*BoardSize/2
	// boardSquares is the total number of squares.
	boardSquares = BoardSize * BoardSize
)

// SquareKind discriminates what currently occupies a board square.
type SquareKind string

const (
	SquareEmpty       SquareKind = "empty"
	SquareTile        SquareKind = "tile"
	SquareLetterBonus SquareKind = "letter_bonus"
	SquareWordBonus   SquareKind = "word_bonus"
)

// Square is one cell of the board. Committing a tile replaces the square
// entirely, so a premium square only ever multiplies the turn that covers it.
type Square struct {
	Kind       SquareKind `json:"kind"`
	Tile       Tile       `json:"tile,omitzero"`
	Multiplier int        `json:"multiplier,omitempty"`
}

// Tile returns the tile on the square, if any.
func (s Square) TileOn() (Tile, bool) {
	if s.Kind == SquareTile {
		return s.Tile, true
	}
	return Tile{}, false
}

// Char returns the visible letter on the square, if any. An unassigned blank
// shows no letter.
func (s Square) Char() (rune, bool) {
	tile, ok := s.TileOn()
	if !ok {
		return 0, false
	}
	return tile.Char()
}

// Board is the 15x15 grid in row-major order.
type Board struct {
	Squares []Square `json:"squares"`
}

// standardLayout is the premium-square layout of a standard board.
const standardLayout = `
	3w .  .  2l .  .  .  3w .  .  .  2l .  .  3w
	.  2w .  .  .  3l .  .  .  3l .  .  .  2w .
	.  .  2w .  .  .  2l .  2l .  .  .  2w .  .
	2l .  .  2w .  .  .  2l .  .  .  2w .  .  2l
	.  .  .  .  2w .  .  .  .  .  2w .  .  .  .
	.  3l .  .  .  3l .  .  .  3l .  .  .  3l .
	.  .  2l .  .  .  2l .  2l .  .  .  2l .  .
	3w .  .  2l .  .  .  2w .  .  .  2l .  .  3w
	.  .  2l .  .  .  2l .  2l .  .  .  2l .  .
	.  3l .  .  .  3l .  .  .  3l .  .  .  3l .
	.  .  .  .  2w .  .  .  .  .  2w .  .  .  .
	2l .  .  2w .  .  .  2l .  .  .  2w .  .  2l
	.  .  2w .  .  .  2l .  2l .  .  .  2w .  .
	.  2w .  .  .  3l .  .  .  3l .  .  .  2w .
	3w .  .  2l .  .  .  3w .  .  .  2l .  .  3w
`

// StandardBoard builds an empty board with the standard premium layout.
func StandardBoard() *Board {
	board, err := ParseBoard(standardLayout)
	if err != nil {
		// The layout above is a constant; failing to parse it is a bug.
		panic(err)
	}
	return board
}

// ParseBoard parses a whitespace-separated board diagram. Tokens are "." for
// an empty square, "2l"/"3l"/"2w"/"3w" for premium squares, and a single
// letter for a placed tile.
func ParseBoard(diagram string) (*Board, error) {
	var squares []Square
	for _, token := range strings.Fields(diagram) {
		switch token {
		case ".":
			squares = append(squares, Square{Kind: SquareEmpty})
		case "2l":
			squares = append(squares, Square{Kind: SquareLetterBonus, Multiplier: 2})
		case "3l":
			squares = append(squares, Square{Kind: SquareLetterBonus, Multiplier: 3})
		case "2w":
			squares = append(squares, Square{Kind: SquareWordBonus, Multiplier: 2})
		case "3w":
			squares = append(squares, Square{Kind: SquareWordBonus, Multiplier: 3})
		default:
			runes := []rune(token)
			if len(runes) != 1 {
				return nil, fmt.Errorf("%w: bad token %q", ErrBoardParse, token)
			}
			squares = append(squares, Square{Kind: SquareTile, Tile: LetterTile(runes[0])})
		}
	}
	if len(squares) != boardSquares {
		return nil, fmt.Errorf("%w: %d squares, want %d", ErrBoardParse, len(squares), boardSquares)
	}
	return &Board{Squares: squares}, nil
}

// Square returns the square at the given flat index.
func (b *Board) Square(index int) (Square, bool) {
	if index < 0 || index >= len(b.Squares) {
		return Square{}, false
	}
	return b.Squares[index], true
}

// GetChar implements CharSource over the committed board state.
func (b *Board) GetChar(index int) (rune, bool) {
	square, ok := b.Square(index)
	if !ok {
		return 0, false
	}
	return square.Char()
}

// Occupied reports whether a tile has been committed at the index.
func (b *Board) Occupied(index int) bool {
	square, ok := b.Square(index)
	return ok && square.Kind == SquareTile
}

// WordBonus returns the product of word-bonus multipliers under the given
// indexes. Squares already covered by tiles contribute nothing.
func (b *Board) WordBonus(indexes []int) int {
	bonus := 1
	for _, index := range indexes {
		if square, ok := b.Square(index); ok && square.Kind == SquareWordBonus {
			bonus *= square.Multiplier
		}
	}
	return bonus
}

// LetterBonus returns the letter multiplier at the index, or 1.
func (b *Board) LetterBonus(index int) int {
	if square, ok := b.Square(index); ok && square.Kind == SquareLetterBonus {
		return square.Multiplier
	}
	return 1
}

// CommitTurn writes the turn's tiles onto the board, replacing whatever
// squares they cover. Validation happens before commit.
func (b *Board) CommitTurn(turn *Turn) {
	for _, placement := range turn.Placements {
		b.Squares[placement.Index] = Square{Kind: SquareTile, Tile: placement.Tile}
	}
}

// Words returns every word currently on the board, horizontal runs first.
func (b *Board) Words() []Word {
	return WordsFrom(b)
}

// Neighbors returns the orthogonally adjacent indexes of a square.
func Neighbors(index int) []int {
	row := index / BoardSize
	var neighbors []int
	if prev := index - 1; prev >= 0 && prev/BoardSize == row {
		neighbors = append(neighbors, prev)
	}
	if next := index + 1; next/BoardSize == row {
		neighbors = append(neighbors, next)
	}
	if up := index - BoardSize; up >= 0 {
		neighbors = append(neighbors, up)
	}
	if down := index + BoardSize; down < boardSquares {
		neighbors = append(neighbors, down)
	}
	return neighbors
}

// String renders the board as a diagram in the same format ParseBoard reads,
// with played blanks prefixed by a colon.
func (b *Board) String() string {
	var sb strings.Builder
	for index, square := range b.Squares {
		sb.WriteString(formatSquare(square))
		if index%BoardSize == BoardSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func formatSquare(square Square) string {
	switch square.Kind {
	case SquareTile:
		tile := square.Tile
		switch {
		case tile.Blank && tile.Letter == 0:
			return ":: "
		case tile.Blank:
			return fmt.Sprintf(":%c ", tile.Letter)
		default:
			return fmt.Sprintf("%c  ", tile.Letter)
		}
	case SquareLetterBonus:
		return fmt.Sprintf("%dl ", square.Multiplier)
	case SquareWordBonus:
		return fmt.Sprintf("%dw ", square.Multiplier)
	default:
		return ".  "
	}
}

// CharSource exposes visible letters by flat index. The board implements it
// for committed state; the scoring overlay implements it for board-plus-turn.
type CharSource interface {
	GetChar(index int) (rune, bool)
}

// Word is a run of two or more letters on the board. Identity is the indexes
// played as well as the text, so duplicate words at different positions are
// distinct.
type Word struct {
	Indexes []int
	Text    string
}

// Equal reports whether two words cover the same squares with the same text.
func (w Word) Equal(other Word) bool {
	if w.Text != other.Text || len(w.Indexes) != len(other.Indexes) {
		return false
	}
	for i := range w.Indexes {
		if w.Indexes[i] != other.Indexes[i] {
			return false
		}
	}
	return true
}

// WordsFrom collects every maximal run of two or more letters from the
// source, scanning rows top-to-bottom then columns left-to-right.
func WordsFrom(src CharSource) []Word {
	var words []Word

	flush := func(current Word) []Word {
		if len(current.Indexes) > 1 {
			words = append(words, current)
		}
		return words
	}

	for row := 0; row < BoardSize; row++ {
		var current Word
		for col := 0; col < BoardSize; col++ {
			index := row*BoardSize + col
			if char, ok := src.GetChar(index); ok {
				current.Indexes = append(current.Indexes, index)
				current.Text += string(char)
				continue
			}
			words = flush(current)
			current = Word{}
		}
		words = flush(current)
	}

	for col := 0; col < BoardSize; col++ {
		var current Word
		for row := 0; row < BoardSize; row++ {
			index := row*BoardSize + col
			if char, ok := src.GetChar(index); ok {
				current.Indexes = append(current.Indexes, index)
				current.Text += string(char)
				continue
			}
			words = flush(current)
			current = Word{}
		}
		words = flush(current)
	}

	return words
}
