package model

import (
	"fmt"
)

// Placement is a single tile played at a flat board index.
type Placement struct {
	Index int  `json:"index"`
	Tile  Tile `json:"tile"`
}

// Turn is one player's set of placements.
type Turn struct {
	Placements []Placement `json:"placements"`
}

// GetTile returns the tile the turn places at the index, if any.
func (t *Turn) GetTile(index int) (Tile, bool) {
	for _, placement := range t.Placements {
		if placement.Index == index {
			return placement.Tile, true
		}
	}
	return Tile{}, false
}

// GetChar returns the visible letter the turn places at the index, if any.
func (t *Turn) GetChar(index int) (rune, bool) {
	tile, ok := t.GetTile(index)
	if !ok {
		return 0, false
	}
	return tile.Char()
}

// Indexes returns the flat indexes covered by the turn.
func (t *Turn) Indexes() []int {
	indexes := make([]int, 0, len(t.Placements))
	for _, placement := range t.Placements {
		indexes = append(indexes, placement.Index)
	}
	return indexes
}

// IsBingo reports whether the turn spends a full rack.
func (t *Turn) IsBingo() bool {
	return len(t.Placements) == RackSize
}

// Validate checks the turn's shape against the board: at least one tile,
// every tile carrying a letter, all indexes in bounds and unique, the
// placements in a single row or column, no
// placement covering an occupied square, and the turn either touching an
// existing tile or covering the center square.
func (t *Turn) Validate(board *Board) error {
	if len(t.Placements) == 0 {
		return ErrTurnEmpty
	}

	seen := make(map[int]struct{}, len(t.Placements))
	for _, placement := range t.Placements {
		if placement.Index < 0 || placement.Index >= boardSquares {
			return fmt.Errorf("%w: index %d", ErrPositionOutOfBounds, placement.Index)
		}
		if _, dup := seen[placement.Index]; dup {
			return fmt.Errorf("%w: index %d", ErrTurnIndexesNotUnique, placement.Index)
		}
		seen[placement.Index] = struct{}{}
		// A blank must be assigned a letter before it can be played
		if _, ok := placement.Tile.Char(); !ok {
			return fmt.Errorf("%w: index %d", ErrTileHasNoLetter, placement.Index)
		}
	}

	if !t.isLinear() {
		return ErrTurnNotLinear
	}

	connected := false
	for _, placement := range t.Placements {
		if board.Occupied(placement.Index) {
			return fmt.Errorf("%w: index %d", ErrSquareOccupied, placement.Index)
		}
		if placement.Index == BoardCenter {
			connected = true
		}
		for _, neighbor := range Neighbors(placement.Index) {
			if board.Occupied(neighbor) {
				connected = true
			}
		}
	}
	if !connected {
		return ErrNotConnected
	}

	return nil
}

// isLinear reports whether all placements share a row or share a column. A
// single placement is trivially linear.
func (t *Turn) isLinear() bool {
	if len(t.Placements) < 2 {
		return true
	}
	firstRow := t.Placements[0].Index / BoardSize
	firstCol := t.Placements[0].Index % BoardSize
	sameRow, sameCol := true, true
	for _, placement := range t.Placements[1:] {
		if placement.Index/BoardSize != firstRow {
			sameRow = false
		}
		if placement.Index%BoardSize != firstCol {
			sameCol = false
		}
	}
	return sameRow || sameCol
}
