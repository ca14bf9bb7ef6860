package usecase

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type State string

const (
	StateAwaitingConfig State = "awaiting_config"
	StatePlaying        State = "playing"
)

const (
	statusAwaitingPlayers = "Awaiting players"
	statusDraw            = "Draw"
)

// Scheduler runs the computer move once the session has settled.
type Scheduler interface {
	Schedule(fn func())
}

// ImmediateScheduler runs the computer move synchronously, at the end of the triggering call.
type ImmediateScheduler struct{}

func (ImmediateScheduler) Schedule(fn func()) {
	fn()
}

type botService interface {
	ChooseMove(board entity.Board) (int, error)
}

// settleKey identifies one resting state of a session. generation changes on every reset.
type settleKey struct {
	generation uint64
	cursor     int
	board      entity.Board
}

// Players is the display view of the configured players.
type Players struct {
	X        string      `json:"x"`
	O        string      `json:"o"`
	Starting entity.Mark `json:"starting"`
	Computer entity.Mark `json:"computer,omitempty"`
}

// View is a read-only snapshot of a session for rendering.
type View struct {
	State         State                `json:"state"`
	Board         entity.Board         `json:"board"`
	Mover         entity.Mark          `json:"mover"`
	Status        string               `json:"status"`
	Terminal      entity.TerminalState `json:"terminal"`
	HistoryLength int                  `json:"history_length"`
	Cursor        int                  `json:"cursor"`
	Players       Players              `json:"players"`
	Moves         []string             `json:"moves"`
}

// Session is the game state machine of a single UI client. It is not safe for concurrent use.
type Session struct {
	logger        *slog.Logger
	bot           botService
	scheduler     Scheduler
	computerLabel string

	state      State
	config     entity.PlayerConfig
	history    *repository.HistoryStore
	generation uint64
	lastFired  *settleKey
}

func NewSession(logger *slog.Logger, bot botService, scheduler Scheduler, computerLabel string) *Session {
	if scheduler == nil {
		scheduler = ImmediateScheduler{}
	}

	if computerLabel == "" {
		computerLabel = entity.DefaultComputerName
	}

	return &Session{
		logger:        logger.With("component", "session"),
		bot:           bot,
		scheduler:     scheduler,
		computerLabel: computerLabel,

		state:   StateAwaitingConfig,
		history: repository.NewHistoryStore(),
	}
}

func (that *Session) State() State {
	return that.state
}

func (that *Session) SubmitConfig(cfg entity.PlayerConfig) error {
	if that.state != StateAwaitingConfig {
		return apperror.ErrInvalidConfigState
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidConfig, err)
	}

	that.config = cfg
	that.reset()
	that.state = StatePlaying

	that.logger.Debug("players configured", "starting", cfg.Starting, "computer", cfg.OIsComputer)

	that.afterSettle()

	return nil
}

// PlayCell places the current mover's mark. Clicks during the computer's turn are ignored.
func (that *Session) PlayCell(cell int) error {
	if that.state != StatePlaying {
		return apperror.ErrGameIsNotStarted
	}

	board := that.history.Current()
	mover := that.mover()

	if mover == that.config.ComputerMark() && !entity.Evaluate(board).IsTerminal() {
		that.logger.Debug("cell click ignored during computer turn", "cell", cell)
		return nil
	}

	next, err := tictactoe.ApplyMove(board, cell, mover)
	if err != nil {
		return fmt.Errorf("failed to play cell: %w", err)
	}

	that.history.Append(next)
	that.logger.Debug("cell played", "cell", cell, "mark", mover, "cursor", that.history.Cursor())

	that.afterSettle()

	return nil
}

func (that *Session) JumpTo(index int) error {
	if that.state != StatePlaying {
		return apperror.ErrGameIsNotStarted
	}

	if err := that.history.JumpTo(index); err != nil {
		return fmt.Errorf("failed to jump: %w", err)
	}

	that.logger.Debug("jumped", "cursor", index)

	// a revisited computer-turn position is a new settle point
	that.lastFired = nil
	that.afterSettle()

	return nil
}

// NewGame clears the board and keeps the players. The caller must have obtained confirmation.
func (that *Session) NewGame() error {
	if that.state != StatePlaying {
		return apperror.ErrGameIsNotStarted
	}

	that.reset()
	that.logger.Debug("new game")

	that.afterSettle()

	return nil
}

// EndGame clears the board and the players and waits for a new configuration.
func (that *Session) EndGame() error {
	if that.state != StatePlaying {
		return apperror.ErrGameIsNotStarted
	}

	that.reset()
	that.config = entity.PlayerConfig{}
	that.state = StateAwaitingConfig
	that.logger.Debug("game ended")

	return nil
}

func (that *Session) View() View {
	board := that.history.Current()
	terminal := entity.Evaluate(board)
	mover := that.mover()

	moves := make([]string, that.history.Len())
	for i := range moves {
		moves[i] = moveLabel(i)
	}

	return View{
		State:         that.state,
		Board:         board,
		Mover:         mover,
		Status:        that.status(mover, terminal),
		Terminal:      terminal,
		HistoryLength: that.history.Len(),
		Cursor:        that.history.Cursor(),
		Players: Players{
			X:        that.config.DisplayName(entity.PlayerX, that.computerLabel),
			O:        that.config.DisplayName(entity.PlayerO, that.computerLabel),
			Starting: that.config.Starting,
			Computer: that.config.ComputerMark(),
		},
		Moves: moves,
	}
}

func (that *Session) mover() entity.Mark {
	return tictactoe.WhoseTurn(that.history.Cursor(), that.config.Starting)
}

func (that *Session) status(mover entity.Mark, terminal entity.TerminalState) string {
	switch {
	case that.state == StateAwaitingConfig:
		return statusAwaitingPlayers
	case terminal.Winner != entity.Empty:
		return "Winner: " + that.config.DisplayName(terminal.Winner, that.computerLabel)
	case terminal.IsDraw:
		return statusDraw
	default:
		return "Next player: " + that.config.DisplayName(mover, that.computerLabel)
	}
}

func (that *Session) reset() {
	that.history.Reset()
	that.generation++
	that.lastFired = nil
}

func (that *Session) currentKey() settleKey {
	return settleKey{
		generation: that.generation,
		cursor:     that.history.Cursor(),
		board:      that.history.Current(),
	}
}

// computerTurn reports whether the computer is due to move from the current state.
func (that *Session) computerTurn() bool {
	computer := that.config.ComputerMark()

	return that.state == StatePlaying &&
		computer != entity.Empty &&
		that.mover() == computer &&
		!entity.Evaluate(that.history.Current()).IsTerminal()
}

// afterSettle schedules the computer move at most once per settle key.
func (that *Session) afterSettle() {
	if !that.computerTurn() {
		return
	}

	key := that.currentKey()
	if that.lastFired != nil && *that.lastFired == key {
		return
	}

	that.lastFired = &key
	that.scheduler.Schedule(func() {
		that.playComputer(key)
	})
}

// playComputer applies one computer move if the session still rests on key.
func (that *Session) playComputer(key settleKey) {
	log := that.logger.With("method", "playComputer")

	if !that.computerTurn() || that.currentKey() != key {
		log.Debug("stale computer move skipped")
		return
	}

	computer := that.config.ComputerMark()

	cell, err := that.bot.ChooseMove(key.board)
	if err != nil {
		log.Error("computer could not choose a move", "error", err)
		return
	}

	next, err := tictactoe.ApplyMove(key.board, cell, computer)
	if err != nil {
		log.Error("computer move rejected", "cell", cell, "error", err)
		return
	}

	that.history.Append(next)
	log.Info("computer moved", "cell", cell, "mark", computer, "cursor", that.history.Cursor())

	that.afterSettle()
}

func moveLabel(move int) string {
	if move == 0 {
		return "Go to game start"
	}

	return fmt.Sprintf("Go to move #%d", move)
}
