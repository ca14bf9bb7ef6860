package repository

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// HistoryStore is the ordered log of board snapshots plus the cursor being viewed.
// history[0] is always the empty board. It is not safe for concurrent use.
type HistoryStore struct {
	boards []entity.Board
	cursor int
}

func NewHistoryStore() *HistoryStore {
	store := &HistoryStore{}
	store.Reset()

	return store
}

// Append drops any snapshots after the cursor, appends board and moves the cursor onto it.
func (that *HistoryStore) Append(board entity.Board) {
	that.boards = append(that.boards[:that.cursor+1], board)
	that.cursor = len(that.boards) - 1
}

func (that *HistoryStore) JumpTo(index int) error {
	if index < 0 || index >= len(that.boards) {
		return fmt.Errorf("%w: %d not in [0, %d)", apperror.ErrInvalidMoveIndex, index, len(that.boards))
	}

	that.cursor = index

	return nil
}

func (that *HistoryStore) Reset() {
	that.boards = []entity.Board{{}}
	that.cursor = 0
}

func (that *HistoryStore) Current() entity.Board {
	return that.boards[that.cursor]
}

func (that *HistoryStore) Cursor() int {
	return that.cursor
}

func (that *HistoryStore) Len() int {
	return len(that.boards)
}

// Boards returns a copy of every snapshot.
func (that *HistoryStore) Boards() []entity.Board {
	boards := make([]entity.Board, len(that.boards))
	copy(boards, that.boards)

	return boards
}
