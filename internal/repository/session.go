package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
)

// SessionRepository keeps live sessions in memory keyed by ID. State is lost on restart.
type SessionRepository[T any] struct {
	mu       sync.RWMutex
	sessions map[string]T
}

func NewSessionRepository[T any]() *SessionRepository[T] {
	return &SessionRepository[T]{
		sessions: make(map[string]T),
	}
}

func (that *SessionRepository[T]) CreateOrUpdate(_ context.Context, id string, session T) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[id] = session

	return nil
}

func (that *SessionRepository[T]) GetByID(_ context.Context, id string) (T, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]
	if !ok {
		var zero T
		return zero, apperror.ErrSessionNotFound
	}

	return session, nil
}

func (that *SessionRepository[T]) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

func (that *SessionRepository[T]) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
