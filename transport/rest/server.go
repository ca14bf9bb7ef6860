package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(logger *slog.Logger, port string, sessions sessionUseCase) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      NewRouter(logger, sessions),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// NewRouter wires the session routes.
func NewRouter(logger *slog.Logger, sessions sessionUseCase) http.Handler {
	h := newHandlers(logger, sessions)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/ping", pingHandler)

	r.Post("/sessions", h.createSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.getSession)
		r.Delete("/", h.deleteSession)
		r.Post("/config", h.submitConfig)
		r.Post("/cells/{index}", h.playCell)
		r.Post("/jump/{index}", h.jumpTo)
		r.Post("/new-game", h.newGame)
		r.Post("/end-game", h.endGame)
	})

	return r
}

// Start - runs the HTTP server until ctx is canceled.
func (that *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- that.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := that.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped with error: %w", err)
		}

		that.logger.Info("HTTP server stopped")

		return nil
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With("component", "http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Debug("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}
