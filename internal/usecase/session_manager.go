package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// LockedSession serializes access to a Session shared between HTTP requests and delayed computer moves.
type LockedSession struct {
	mu      sync.Mutex
	session *Session
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, id string, session *LockedSession) error
	GetByID(ctx context.Context, id string) (*LockedSession, error)
	DeleteByID(ctx context.Context, id string) error
}

// delayedScheduler runs the computer move after delay, holding the session lock.
type delayedScheduler struct {
	delay time.Duration
	mu    *sync.Mutex
}

func (that *delayedScheduler) Schedule(fn func()) {
	time.AfterFunc(that.delay, func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		fn()
	})
}

type SessionManager struct {
	logger *slog.Logger

	sessionRepo   sessionRepo
	bot           botService
	computerLabel string
	moveDelay     time.Duration
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, bot botService, computerLabel string, moveDelay time.Duration) *SessionManager {
	return &SessionManager{
		logger: logger,

		sessionRepo:   sessionRepo,
		bot:           bot,
		computerLabel: computerLabel,
		moveDelay:     moveDelay,
	}
}

func (that *SessionManager) CreateSession(ctx context.Context) (string, View, error) {
	id := uuid.NewString()

	locked := &LockedSession{}

	var scheduler Scheduler = ImmediateScheduler{}
	if that.moveDelay > 0 {
		scheduler = &delayedScheduler{delay: that.moveDelay, mu: &locked.mu}
	}

	locked.session = NewSession(that.logger.With("session", id), that.bot, scheduler, that.computerLabel)

	if err := that.sessionRepo.CreateOrUpdate(ctx, id, locked); err != nil {
		return "", View{}, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "session", id)

	return id, locked.session.View(), nil
}

func (that *SessionManager) GetView(ctx context.Context, id string) (View, error) {
	return that.withSession(ctx, id, func(*Session) error {
		return nil
	})
}

func (that *SessionManager) SubmitConfig(ctx context.Context, id string, cfg entity.PlayerConfig) (View, error) {
	return that.withSession(ctx, id, func(session *Session) error {
		return session.SubmitConfig(cfg)
	})
}

func (that *SessionManager) PlayCell(ctx context.Context, id string, cell int) (View, error) {
	return that.withSession(ctx, id, func(session *Session) error {
		return session.PlayCell(cell)
	})
}

func (that *SessionManager) JumpTo(ctx context.Context, id string, index int) (View, error) {
	return that.withSession(ctx, id, func(session *Session) error {
		return session.JumpTo(index)
	})
}

func (that *SessionManager) NewGame(ctx context.Context, id string) (View, error) {
	return that.withSession(ctx, id, func(session *Session) error {
		return session.NewGame()
	})
}

func (that *SessionManager) EndGame(ctx context.Context, id string) (View, error) {
	return that.withSession(ctx, id, func(session *Session) error {
		return session.EndGame()
	})
}

func (that *SessionManager) DeleteSession(ctx context.Context, id string) error {
	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session deleted", "session", id)

	return nil
}

// withSession runs fn under the session lock and returns the resulting view, unchanged when fn fails.
func (that *SessionManager) withSession(ctx context.Context, id string, fn func(*Session) error) (View, error) {
	locked, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("failed to get session: %w", err)
	}

	locked.mu.Lock()
	defer locked.mu.Unlock()

	err = fn(locked.session)

	return locked.session.View(), err
}
