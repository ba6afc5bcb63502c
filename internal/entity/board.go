package entity

import (
	"fmt"

	"tictactoe-api/internal/apperror"
)

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""
)

const (
	PlayerHuman    = "human"
	PlayerComputer = "computer"
)

const boardSize = 3

// WinCombos lists every winning triple as flat board indexes, in fixed scan
// order: rows top to bottom, columns left to right, then the two diagonals.
// Winner reports the first matching triple, so the order is part of the
// contract.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid in row-major order: index = x*3 + y, where x is the
// row and y is the column.
type Board [9]string

// WinningLine is the first completed triple on a board, exposed to clients so
// they don't have to rescan the board themselves.
type WinningLine struct {
	Player string    `json:"player"`
	Cells  [3][2]int `json:"cells"`
}

func InRange(x, y int) bool {
	return x >= 0 && x < boardSize && y >= 0 && y < boardSize
}

func cellIndex(x, y int) int {
	return x*boardSize + y
}

// At returns the mark at (x, y), or ErrOutOfRange.
func (that Board) At(x, y int) (string, error) {
	if !InRange(x, y) {
		return "", fmt.Errorf("%w: got (%d, %d)", apperror.ErrOutOfRange, x, y)
	}

	return that[cellIndex(x, y)], nil
}

// Apply returns a copy of the board with mark placed at (x, y).
func (that Board) Apply(x, y int, mark string) (Board, error) {
	cell, err := that.At(x, y)
	if err != nil {
		return that, err
	}

	if cell != EmptyCell {
		return that, fmt.Errorf("%w: cell (%d, %d)", apperror.ErrCellOccupied, x, y)
	}

	that[cellIndex(x, y)] = mark

	return that, nil
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Winner returns the mark owning the first completed triple in scan order, or
// an empty string when no triple is completed.
func (that Board) Winner() string {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return ""
}

// WinningLine returns the first completed triple in scan order with its
// owning player, or nil when the board has no winner.
func (that Board) WinningLine() *WinningLine {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a == EmptyCell || a != b || b != c {
			continue
		}

		line := &WinningLine{Player: PlayerForMark(a)}
		for i, idx := range combo {
			line.Cells[i] = [2]int{idx / boardSize, idx % boardSize}
		}

		return line
	}

	return nil
}

// EmptyCells returns the flat indexes of all empty cells in board order.
func (that Board) EmptyCells() []int {
	available := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			available = append(available, i)
		}
	}

	return available
}

// Rows projects the flat board into 3 rows of 3 cells for API responses.
func (that Board) Rows() [][]string {
	rows := make([][]string, boardSize)
	for x := range rows {
		rows[x] = make([]string, boardSize)
		for y := range rows[x] {
			rows[x][y] = that[cellIndex(x, y)]
		}
	}

	return rows
}

func PlayerForMark(mark string) string {
	if mark == MarkX {
		return PlayerHuman
	}

	return PlayerComputer
}

func MarkForPlayer(player string) string {
	if player == PlayerHuman {
		return MarkX
	}

	return MarkO
}

// ReplayMoves rebuilds a board by replaying a move log from the empty board.
// The log is the source of truth in storage; any illegal entry means the log
// is corrupt.
func ReplayMoves(moves []Move) (Board, error) {
	var board Board

	for _, move := range moves {
		next, err := board.Apply(move.X, move.Y, MarkForPlayer(move.Player))
		if err != nil {
			return board, fmt.Errorf("can't replay move %d: %w", move.MoveNumber, err)
		}

		board = next
	}

	return board, nil
}
