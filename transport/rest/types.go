package rest

import (
	"time"

	"tictactoe-api/internal/entity"
)

// MoveRequest uses pointer coordinates so 0 survives the required check;
// range validation belongs to the engine.
type MoveRequest struct {
	X *int `json:"x" validate:"required"`
	Y *int `json:"y" validate:"required"`
}

type GameResponse struct {
	GameID      string              `json:"game_id"`
	Board       [][]string          `json:"board"`
	Status      string              `json:"status"`
	Winner      *string             `json:"winner"`
	WinningLine *entity.WinningLine `json:"winning_line"`
	Moves       []MoveResponse      `json:"moves"`
	CreatedAt   time.Time           `json:"created_at"`
}

type GameSummaryResponse struct {
	GameID    string    `json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

type MoveResponse struct {
	MoveNumber int       `json:"move_number"`
	Player     string    `json:"player"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Timestamp  time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func newGameResponse(game *entity.Game) GameResponse {
	var winner *string
	if game.Winner != "" {
		winner = &game.Winner
	}

	return GameResponse{
		GameID:      game.ID,
		Board:       game.Board.Rows(),
		Status:      game.Status,
		Winner:      winner,
		WinningLine: game.Board.WinningLine(),
		Moves:       newMoveResponses(game.Moves),
		CreatedAt:   game.CreatedAt,
	}
}

func newMoveResponses(moves []entity.Move) []MoveResponse {
	responses := make([]MoveResponse, 0, len(moves))
	for _, move := range moves {
		responses = append(responses, MoveResponse{
			MoveNumber: move.MoveNumber,
			Player:     move.Player,
			X:          move.X,
			Y:          move.Y,
			Timestamp:  move.Timestamp,
		})
	}

	return responses
}

func newGameSummaryResponses(summaries []entity.GameSummary) []GameSummaryResponse {
	responses := make([]GameSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, GameSummaryResponse{
			GameID:    summary.ID,
			CreatedAt: summary.CreatedAt,
			Status:    summary.Status,
		})
	}

	return responses
}
