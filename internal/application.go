package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/service"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-timetravel/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	sessionRepo := repository.NewSessionRepository[*usecase.LockedSession]()
	botService := service.NewBotService(nil)
	sessionManager := usecase.NewSessionManager(logger, sessionRepo, botService, conf.Opponent.Label, conf.Opponent.MoveDelay)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "opponent_delay", conf.Opponent.MoveDelay)

	if err := rest.New(logger, conf.HTTPPort, sessionManager).Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
