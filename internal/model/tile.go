package model

import (
	"fmt"

	"github.com/mcoot/scrabble-go/internal/dependencies/random"
)

// Tile is a single letter tile. A blank tile has Blank set; once played it
// carries the letter it stands for but still scores zero.
type Tile struct {
	Letter rune `json:"letter"`
	Blank  bool `json:"blank,omitempty"`
}

// LetterTile creates a regular tile for the given letter.
func LetterTile(letter rune) Tile {
	return Tile{Letter: letter}
}

// BlankTile creates an unassigned blank tile.
func BlankTile() Tile {
	return Tile{Blank: true}
}

// BlankAs creates a blank tile played as the given letter.
func BlankAs(letter rune) Tile {
	return Tile{Letter: letter, Blank: true}
}

// Char returns the letter the tile shows, or false for an unassigned blank.
func (t Tile) Char() (rune, bool) {
	if t.Letter == 0 {
		return 0, false
	}
	return t.Letter, true
}

// Score returns the point value of the tile. Blanks score zero.
func (t Tile) Score() int {
	if t.Blank {
		return 0
	}
	return letterScores[t.Letter]
}

// String renders the tile for racks and remaining-tile listings.
func (t Tile) String() string {
	if t.Blank && t.Letter == 0 {
		return "BLANK"
	}
	return string(t.Letter)
}

func (t Tile) debugString() string {
	switch {
	case t.Blank && t.Letter == 0:
		return "[ ]"
	case t.Blank:
		return fmt.Sprintf("[(%c)]", t.Letter)
	default:
		return fmt.Sprintf("[%c]", t.Letter)
	}
}

var letterScores = map[rune]int{
	'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1, 'F': 4, 'G': 2, 'H': 4,
	'I': 1, 'J': 8, 'K': 5, 'L': 1, 'M': 3, 'N': 1, 'O': 1, 'P': 3,
	'Q': 10, 'R': 1, 'S': 1, 'T': 1, 'U': 1, 'V': 4, 'W': 4, 'X': 8,
	'Y': 4, 'Z': 10,
}

// Rack is the set of tiles a player holds. Order matters only for spending:
// tiles are matched by value, blanks by their blankness.
type Rack []Tile

// RackSize is the number of tiles a player holds while the bag lasts.
const RackSize = 7

// Bag is the pool of undrawn tiles. Drawing pops from the end so tests can
// construct deterministic bags.
type Bag []Tile

// Pop draws the next tile from the bag.
func (b *Bag) Pop() (Tile, bool) {
	if len(*b) == 0 {
		return Tile{}, false
	}
	tile := (*b)[len(*b)-1]
	*b = (*b)[:len(*b)-1]
	return tile, true
}

// Shuffle permutes the bag in place with a Fisher-Yates shuffle.
func (b Bag) Shuffle(rnd random.Random) {
	for i := len(b) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		b[i], b[j] = b[j], b[i]
	}
}

// standardBagCounts is the standard English tile distribution.
var standardBagCounts = []struct {
	letter rune
	count  int
}{
	{'A', 9}, {'B', 2}, {'C', 2}, {'D', 4}, {'E', 12}, {'F', 2},
	{'G', 3}, {'H', 2}, {'I', 9}, {'J', 1}, {'K', 1}, {'L', 4},
	{'M', 2}, {'N', 6}, {'O', 8}, {'P', 2}, {'Q', 1}, {'R', 6},
	{'S', 4}, {'T', 6}, {'U', 4}, {'V', 2}, {'W', 2}, {'X', 1},
	{'Y', 2}, {'Z', 1},
}

// blankCount is the number of blank tiles in a standard bag.
const blankCount = 2

// StandardBag builds a full, unshuffled standard bag. Callers shuffle it
// with their own randomness source before play.
func StandardBag() Bag {
	var bag Bag
	for _, entry := range standardBagCounts {
		for i := 0; i < entry.count; i++ {
			bag = append(bag, LetterTile(entry.letter))
		}
	}
	for i := 0; i < blankCount; i++ {
		bag = append(bag, BlankTile())
	}
	return bag
}
