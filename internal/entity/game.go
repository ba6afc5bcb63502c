package entity

import "time"

const (
	StatusInProgress  = "in_progress"
	StatusHumanWon    = "human_won"
	StatusComputerWon = "computer_won"
	StatusDraw        = "draw"
)

// Move is one recorded mark. MoveNumbers start at 1 and are gapless within a
// game.
type Move struct {
	GameID     string    `json:"game_id"`
	MoveNumber int       `json:"move_number"`
	Player     string    `json:"player"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Timestamp  time.Time `json:"timestamp"`
}

// Game is the aggregate: the board is a cached projection of replaying Moves
// from the empty board and is kept consistent on every mutation.
type Game struct {
	ID        string    `json:"game_id"`
	Board     Board     `json:"board"`
	Status    string    `json:"status"`
	Winner    string    `json:"winner,omitempty"`
	Moves     []Move    `json:"moves"`
	CreatedAt time.Time `json:"created_at"`
}

// GameSummary is the listing shape: identity and outcome without the move log.
type GameSummary struct {
	ID        string    `json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:        id,
		Board:     Board{},
		Status:    StatusInProgress,
		CreatedAt: time.Now().UTC(),
	}
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsFinished() bool {
	return !that.IsInProgress()
}

// RecordMove places the mark for player at (x, y) and appends the move to the
// log with the next move number. The caller validates legality first; an
// illegal placement is returned unapplied.
func (that *Game) RecordMove(player string, x, y int) error {
	board, err := that.Board.Apply(x, y, MarkForPlayer(player))
	if err != nil {
		return err
	}

	that.Board = board
	that.Moves = append(that.Moves, Move{
		GameID:     that.ID,
		MoveNumber: len(that.Moves) + 1,
		Player:     player,
		X:          x,
		Y:          y,
		Timestamp:  time.Now().UTC(),
	})

	return nil
}

// RefreshOutcome re-evaluates the terminal conditions after a move. An
// unfinished board stays in progress; a completed triple or a full board is
// absorbing.
func (that *Game) RefreshOutcome() {
	switch that.Board.Winner() {
	case MarkX:
		that.Status = StatusHumanWon
		that.Winner = PlayerHuman
	case MarkO:
		that.Status = StatusComputerWon
		that.Winner = PlayerComputer
	default:
		if that.Board.IsFull() {
			that.Status = StatusDraw
			return
		}

		that.Status = StatusInProgress
	}
}
