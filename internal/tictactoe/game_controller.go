package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// ApplyMove returns a copy of board with cell set to mark. The input board is never modified.
func ApplyMove(board entity.Board, cell int, mark entity.Mark) (entity.Board, error) {
	if entity.Evaluate(board).IsTerminal() {
		return board, apperror.ErrGameAlreadyOver
	}

	if err := validateMove(board, cell, mark); err != nil {
		return board, fmt.Errorf("invalid move: %w", err)
	}

	return board.With(cell, mark), nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int, mark entity.Mark) error {
	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrIllegalCell, cell)
	}

	if board[cell] != entity.Empty {
		return fmt.Errorf("%w: cell %d is taken by %s", apperror.ErrIllegalCell, cell, board[cell])
	}

	if !mark.IsPlayer() {
		return apperror.ErrInvalidMark
	}

	return nil
}

// WhoseTurn derives the mover from the history cursor: even moves belong to the starting player.
func WhoseTurn(cursor int, starting entity.Mark) entity.Mark {
	if cursor%2 == 0 {
		return starting
	}

	return starting.Opponent()
}
