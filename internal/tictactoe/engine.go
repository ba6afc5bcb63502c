package tictactoe

import (
	"fmt"

	"tictactoe-api/internal/apperror"
	"tictactoe-api/internal/entity"
)

// ApplyHumanMove runs one full turn as a single logical transaction: validate
// the human mark at (x, y), apply and record it, and - if the game is still
// in progress - apply and record the computer's reply. A rejection returns
// the game untouched.
func ApplyHumanMove(game *entity.Game, x, y int, rng Rng) error {
	if err := validateMove(game, x, y); err != nil {
		return err
	}

	if err := game.RecordMove(entity.PlayerHuman, x, y); err != nil {
		return fmt.Errorf("failed to apply human move: %w", err)
	}

	game.RefreshOutcome()

	if game.IsFinished() {
		return nil
	}

	botX, botY, err := ChooseMove(game.Board, rng)
	if err != nil {
		return fmt.Errorf("failed to choose computer move: %w", err)
	}

	if err = game.RecordMove(entity.PlayerComputer, botX, botY); err != nil {
		return fmt.Errorf("failed to apply computer move: %w", err)
	}

	game.RefreshOutcome()

	return nil
}

// validateMove - checks if the move is legal: terminal status first, then
// coordinates, then cell occupancy.
func validateMove(game *entity.Game, x, y int) error {
	if game.IsFinished() {
		return fmt.Errorf("%w: status %q", apperror.ErrGameFinished, game.Status)
	}

	cell, err := game.Board.At(x, y)
	if err != nil {
		return err
	}

	if cell != entity.EmptyCell {
		return fmt.Errorf("%w: cell (%d, %d)", apperror.ErrCellOccupied, x, y)
	}

	return nil
}
