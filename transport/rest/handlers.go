package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

var (
	errConfirmationRequired = errors.New("confirmation is required")
	errBadRequest           = errors.New("bad request")
)

type sessionUseCase interface {
	CreateSession(ctx context.Context) (string, usecase.View, error)
	GetView(ctx context.Context, id string) (usecase.View, error)
	DeleteSession(ctx context.Context, id string) error

	SubmitConfig(ctx context.Context, id string, cfg entity.PlayerConfig) (usecase.View, error)
	PlayCell(ctx context.Context, id string, cell int) (usecase.View, error)
	JumpTo(ctx context.Context, id string, index int) (usecase.View, error)
	NewGame(ctx context.Context, id string) (usecase.View, error)
	EndGame(ctx context.Context, id string) (usecase.View, error)
}

// Response is the body of every session endpoint.
type Response struct {
	ID    string        `json:"id,omitempty"`
	View  *usecase.View `json:"view,omitempty"`
	Error string        `json:"error,omitempty"`
}

type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

func newHandlers(logger *slog.Logger, sessions sessionUseCase) *handlers {
	return &handlers{
		logger:   logger.With("component", "handlers"),
		sessions: sessions,
	}
}

func (that *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	id, view, err := that.sessions.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, "createSession", nil, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, Response{ID: id, View: &view})
}

func (that *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.GetView(r.Context(), chi.URLParam(r, "id"))
	that.respond(w, "getSession", view, err)
}

func (that *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "deleteSession", nil, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) submitConfig(w http.ResponseWriter, r *http.Request) {
	var cfg entity.PlayerConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		that.writeError(w, "submitConfig", nil, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	view, err := that.sessions.SubmitConfig(r.Context(), chi.URLParam(r, "id"), cfg)
	that.respond(w, "submitConfig", view, err)
}

func (that *handlers) playCell(w http.ResponseWriter, r *http.Request) {
	cell, err := indexParam(r)
	if err != nil {
		that.writeError(w, "playCell", nil, err)
		return
	}

	view, err := that.sessions.PlayCell(r.Context(), chi.URLParam(r, "id"), cell)
	that.respond(w, "playCell", view, err)
}

func (that *handlers) jumpTo(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		that.writeError(w, "jumpTo", nil, err)
		return
	}

	view, err := that.sessions.JumpTo(r.Context(), chi.URLParam(r, "id"), index)
	that.respond(w, "jumpTo", view, err)
}

func (that *handlers) newGame(w http.ResponseWriter, r *http.Request) {
	if err := requireConfirmation(r); err != nil {
		that.writeError(w, "newGame", nil, err)
		return
	}

	view, err := that.sessions.NewGame(r.Context(), chi.URLParam(r, "id"))
	that.respond(w, "newGame", view, err)
}

func (that *handlers) endGame(w http.ResponseWriter, r *http.Request) {
	if err := requireConfirmation(r); err != nil {
		that.writeError(w, "endGame", nil, err)
		return
	}

	view, err := that.sessions.EndGame(r.Context(), chi.URLParam(r, "id"))
	that.respond(w, "endGame", view, err)
}

func (that *handlers) respond(w http.ResponseWriter, method string, view usecase.View, err error) {
	if err != nil {
		that.writeError(w, method, &view, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{View: &view})
}

// writeError reports err with its status; view is attached when the session exists.
func (that *handlers) writeError(w http.ResponseWriter, method string, view *usecase.View, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	} else {
		that.logger.Debug("request rejected", "method", method, "error", err)
	}

	if errors.Is(err, apperror.ErrSessionNotFound) {
		view = nil
	}

	that.writeJSON(w, status, Response{View: view, Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, errConfirmationRequired),
		errors.Is(err, apperror.ErrIllegalCell),
		errors.Is(err, apperror.ErrInvalidMoveIndex),
		errors.Is(err, apperror.ErrInvalidConfig),
		errors.Is(err, apperror.ErrInvalidMark):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameAlreadyOver),
		errors.Is(err, apperror.ErrInvalidConfigState),
		errors.Is(err, apperror.ErrGameIsNotStarted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func indexParam(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, fmt.Errorf("%w: index must be a number", errBadRequest)
	}

	return index, nil
}

func requireConfirmation(r *http.Request) error {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	if !req.Confirm {
		return errConfirmationRequired
	}

	return nil
}
