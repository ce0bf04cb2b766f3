package scoring

import (
	"github.com/mcoot/scrabble-go/internal/model"
	"github.com/mcoot/scrabble-go/internal/services/dictionary"
)

// BingoEntry labels the bonus for spending a full rack in one turn.
const BingoEntry = "*"

// bingoPoints is the bonus for a full-rack turn.
const bingoPoints = 50

// Service scores turns by overlaying them on the board before they commit
type Service struct {
	dictionary *dictionary.Service
}

// New creates a new scoring service
func New(dictionary *dictionary.Service) *Service {
	return &Service{
		dictionary: dictionary,
	}
}

// Overlay is the board as it would look with the turn's tiles in place. It
// reads the turn's tiles over the board's without committing anything.
type Overlay struct {
	Board *model.Board
	Turn  *model.Turn
}

// GetChar implements model.CharSource over board-plus-turn.
func (o *Overlay) GetChar(index int) (rune, bool) {
	if char, ok := o.Turn.GetChar(index); ok {
		return char, true
	}
	return o.Board.GetChar(index)
}

// getTile returns the tile at the index, the turn's taking precedence.
func (o *Overlay) getTile(index int) (model.Tile, bool) {
	if tile, ok := o.Turn.GetTile(index); ok {
		return tile, true
	}
	square, ok := o.Board.Square(index)
	if !ok {
		return model.Tile{}, false
	}
	return square.TileOn()
}

// NewWords returns the words the turn would form: every word on the overlay
// that is not already on the board. A word is identical only if it covers
// the same squares, so a repeated word at a new position still counts.
func (o *Overlay) NewWords() []model.Word {
	existing := o.Board.Words()
	var words []model.Word
	for _, word := range model.WordsFrom(o) {
		old := false
		for _, prior := range existing {
			if word.Equal(prior) {
				old = true
				break
			}
		}
		if !old {
			words = append(words, word)
		}
	}
	return words
}

// scoreWord scores one word: each tile's value times any letter bonus under
// it, the total times any word bonuses under the word. Bonus squares only
// survive on the board until a tile commits over them, so they pay out for
// exactly one turn.
func (o *Overlay) scoreWord(word model.Word) int {
	score := 0
	for _, index := range word.Indexes {
		tile, ok := o.getTile(index)
		if !ok {
			continue
		}
		score += tile.Score() * o.Board.LetterBonus(index)
	}
	return score * o.Board.WordBonus(word.Indexes)
}

// ScoreTurn validates the turn's words against the dictionary and scores
// them. A full-rack turn earns the bingo bonus on top.
func (s *Service) ScoreTurn(board *model.Board, turn *model.Turn) (model.TurnScore, error) {
	overlay := &Overlay{Board: board, Turn: turn}
	newWords := overlay.NewWords()

	if illegal := s.dictionary.IllegalWords(newWords); len(illegal) > 0 {
		return model.TurnScore{}, &model.IllegalWordsError{Words: illegal}
	}

	var score model.TurnScore
	for _, word := range newWords {
		score.Words = append(score.Words, model.WordScore{
			Word:   word.Text,
			Points: overlay.scoreWord(word),
		})
	}

	if turn.IsBingo() {
		score.Words = append(score.Words, model.WordScore{
			Word:   BingoEntry,
			Points: bingoPoints,
		})
	}

	return score, nil
}
