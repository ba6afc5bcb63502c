package tictactoe

import (
	"tictactoe-api/internal/apperror"
	"tictactoe-api/internal/entity"
)

// ChooseMove picks the computer's cell uniformly at random among the empty
// cells. ErrNoAvailableMoves on a full board signals an engine bug: the state
// machine never asks for a move once the board is full.
func ChooseMove(board entity.Board, rng Rng) (int, int, error) {
	available := board.EmptyCells()
	if len(available) == 0 {
		return 0, 0, apperror.ErrNoAvailableMoves
	}

	chosenCell := available[rng.IntN(len(available))]

	return chosenCell / 3, chosenCell % 3, nil
}
