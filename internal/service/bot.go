package service

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type BotService interface {
	ChooseMove(board entity.Board) (int, error)
}

type botService struct {
	intn func(n int) int
}

// NewBotService returns the uniform-random opponent. intn must return a value in [0, n); nil uses math/rand.
func NewBotService(intn func(n int) int) BotService {
	if intn == nil {
		intn = rand.Intn //nolint: gosec // it's ok
	}

	return &botService{
		intn: intn,
	}
}

func (that *botService) ChooseMove(board entity.Board) (int, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return -1, apperror.ErrNoLegalMove
	}

	return availableCells[that.intn(len(availableCells))], nil
}
