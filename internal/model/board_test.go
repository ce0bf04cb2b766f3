package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// testBoardA is a mid-game board used across the board and scoring tests.
const testBoardA = `
	3w .  .  2l .  .  .  3w .  .  .  2l .  H  I
	.  2w .  .  .  3l .  .  .  3l .  .  .  2w .
	.  .  2w .  .  .  2l .  2l .  .  .  2w .  .
	2l .  .  2w .  .  .  2l .  .  .  2w .  .  2l
	.  .  .  .  2w .  .  .  .  .  2w .  .  .  .
	.  3l .  .  .  3l .  .  .  3l .  .  .  3l .
	.  .  2l .  .  .  2l .  2l .  .  .  2l .  .
	3w .  .  2l .  .  .  A  M  P  L  E  .  .  3w
	.  .  2l .  .  .  2l .  A  A  .  .  2l .  .
	.  3l .  .  .  H  A  P  P  Y  .  .  .  3l .
	.  .  .  .  2w .  .  .  .  E  2w .  .  .  .
	2l .  .  2w .  .  .  2l .  R  .  2w .  .  O
	.  .  2w .  .  .  2l .  2l .  .  .  2w .  O
	.  2w .  .  .  3l .  .  .  3l .  .  .  2w Z
	3w .  .  2l .  .  .  3w .  .  .  2l .  .  E
`

type BoardSuite struct {
	suite.Suite
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) wordTexts(words []Word) []string {
	texts := make([]string, len(words))
	for i, word := range words {
		texts[i] = word.Text
	}
	return texts
}

func (s *BoardSuite) TestStandardBoardIsEmpty() {
	board := StandardBoard()
	s.Len(board.Squares, BoardSize*BoardSize)
	s.Empty(board.Words())

	center, ok := board.Square(BoardCenter)
	s.Require().True(ok)
	s.Equal(SquareWordBonus, center.Kind)
	s.Equal(2, center.Multiplier)
}

func (s *BoardSuite) TestParseBoardRejectsBadToken() {
	_, err := ParseBoard("xx")
	s.ErrorIs(err, ErrBoardParse)
}

func (s *BoardSuite) TestParseBoardRejectsWrongSize() {
	_, err := ParseBoard(". . .")
	s.ErrorIs(err, ErrBoardParse)
}

func (s *BoardSuite) TestWords() {
	board, err := ParseBoard(testBoardA)
	s.Require().NoError(err)

	s.Equal(
		[]string{"HI", "AMPLE", "AA", "HAPPY", "MAP", "PAYER", "OOZE"},
		s.wordTexts(board.Words()),
	)
}

func (s *BoardSuite) TestCommitTurn() {
	board, err := ParseBoard(testBoardA)
	s.Require().NoError(err)

	turn := &Turn{Placements: []Placement{
		{Index: 111, Tile: LetterTile('S')},
		{Index: 126, Tile: LetterTile('L')},
		{Index: 156, Tile: LetterTile('T')},
	}}
	board.CommitTurn(turn)

	s.Equal(
		[]string{"HI", "SAMPLE", "AA", "HAPPY", "SLAT", "MAP", "PAYER", "OOZE"},
		s.wordTexts(board.Words()),
	)
}

func (s *BoardSuite) TestCommitTurnReplacesBonusSquare() {
	board := StandardBoard()
	board.CommitTurn(&Turn{Placements: []Placement{
		{Index: BoardCenter, Tile: LetterTile('A')},
	}})

	s.True(board.Occupied(BoardCenter))
	s.Equal(1, board.WordBonus([]int{BoardCenter}))
}

func (s *BoardSuite) TestLetterBonus() {
	board := StandardBoard()
	s.Equal(3, board.LetterBonus(1*BoardSize+5))
	s.Equal(2, board.LetterBonus(0*BoardSize+3))
	s.Equal(1, board.LetterBonus(0*BoardSize+1))
}

func (s *BoardSuite) TestWordBonus() {
	board := StandardBoard()
	// 3w at the corner and 2w on the diagonal multiply together.
	s.Equal(6, board.WordBonus([]int{0, BoardSize + 1, 2}))
}

func (s *BoardSuite) TestNeighbors() {
	s.ElementsMatch([]int{1, BoardSize}, Neighbors(0))
	s.ElementsMatch(
		[]int{BoardCenter - 1, BoardCenter + 1, BoardCenter - BoardSize, BoardCenter + BoardSize},
		Neighbors(BoardCenter),
	)
	s.ElementsMatch([]int{13*BoardSize + 14, 14*BoardSize + 13}, Neighbors(14*BoardSize+14))
}

func (s *BoardSuite) TestStringRoundTrips() {
	board, err := ParseBoard(testBoardA)
	s.Require().NoError(err)

	reparsed, err := ParseBoard(board.String())
	s.Require().NoError(err)
	s.Equal(board.Squares, reparsed.Squares)
}
