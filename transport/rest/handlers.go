package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"tictactoe-api/internal/apperror"
	"tictactoe-api/internal/entity"
)

var validate = validator.New()

// clientErrors are rejections caused by the request itself; they map to 400
// with the sentinel's message as the detail.
var clientErrors = []error{
	apperror.ErrOutOfRange,
	apperror.ErrCellOccupied,
	apperror.ErrGameFinished,
}

type gameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	ListGames(ctx context.Context) ([]entity.GameSummary, error)
	ListMoves(ctx context.Context, id string) ([]entity.Move, error)
	MakeMove(ctx context.Context, id string, x, y int) (*entity.Game, error)
}

type Handlers struct {
	logger      *slog.Logger
	gameService gameService
}

func NewHandlers(logger *slog.Logger, gameService gameService) *Handlers {
	return &Handlers{
		logger:      logger.With("component", "rest"),
		gameService: gameService,
	}
}

func (that *Handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameResponse(game))
}

func (that *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	summaries, err := that.gameService.ListGames(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameSummaryResponses(summaries))
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *Handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var request MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "invalid request body"})
		return
	}

	if err := validate.Struct(&request); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			that.writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Detail: validationErrs[0].Field() + " is required",
			})
			return
		}

		that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "invalid request body"})
		return
	}

	game, err := that.gameService.MakeMove(r.Context(), r.PathValue("id"), *request.X, *request.Y)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *Handlers) ListMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := that.gameService.ListMoves(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newMoveResponses(moves))
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("could not write response", "error", err)
	}
}

func (that *Handlers) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperror.ErrGameNotFound) {
		that.writeJSON(w, http.StatusNotFound, ErrorResponse{Detail: apperror.ErrGameNotFound.Error()})
		return
	}

	for _, clientErr := range clientErrors {
		if errors.Is(err, clientErr) {
			that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: clientErr.Error()})
			return
		}
	}

	that.logger.Error("request failed", "error", err)
	that.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
}
