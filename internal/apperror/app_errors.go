package apperror

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFinished     = errors.New("game is already finished")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrOutOfRange       = errors.New("coordinates must be between 0 and 2")
	ErrNoAvailableMoves = errors.New("no available moves")
)
