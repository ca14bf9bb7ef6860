package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/service"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

const maxWaitDuration = 30 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Sessions *usecase.SessionManager
}

// New builds a session manager over in-memory storage with a synchronous computer opponent.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	sessions := usecase.NewSessionManager(
		logger,
		repository.NewSessionRepository[*usecase.LockedSession](),
		service.NewBotService(nil),
		entity.DefaultComputerName,
		0,
	)

	return ctx, &Suite{
		T:        t,
		Logger:   logger,
		Sessions: sessions,
	}
}
