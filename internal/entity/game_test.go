package entity

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = PlayerX
	o = PlayerO
	e = Empty
)

func TestEvaluate(t *testing.T) {
	t.Run("Returns PlayerX when Player X wins", func(t *testing.T) {
		// Given: a board where Player X has the top row
		board := Board{
			x, x, x,
			o, o, e,
			e, e, e,
		}

		// When: evaluating the board
		state := Evaluate(board)

		// Then: X wins on the top row
		assert.Equal(t, PlayerX, state.Winner)
		assert.Equal(t, []int{0, 1, 2}, state.Line)
		assert.False(t, state.IsDraw)
		assert.True(t, state.IsTerminal())
	})

	t.Run("Returns PlayerO when Player O wins on a diagonal", func(t *testing.T) {
		// Given: a board where Player O holds the anti-diagonal
		board := Board{
			x, x, o,
			x, o, e,
			o, e, e,
		}

		// When: evaluating the board
		state := Evaluate(board)

		// Then: O wins on 2-4-6
		assert.Equal(t, PlayerO, state.Winner)
		assert.Equal(t, []int{2, 4, 6}, state.Line)
	})

	t.Run("Returns the first line in evaluation order", func(t *testing.T) {
		// Given: a board where X completes both the first row and the first column
		board := Board{
			x, x, x,
			x, o, o,
			x, o, o,
		}

		// When: evaluating the board
		state := Evaluate(board)

		// Then: the row is reported because rows are checked first
		assert.Equal(t, []int{0, 1, 2}, state.Line)
	})

	t.Run("Returns a draw when the board is full", func(t *testing.T) {
		// Given: a full board without a winning triple
		board := Board{
			x, o, x,
			x, o, x,
			o, x, o,
		}

		// When: evaluating the board
		state := Evaluate(board)

		// Then: it is a draw
		assert.Equal(t, Empty, state.Winner)
		assert.Empty(t, state.Line)
		assert.True(t, state.IsDraw)
		assert.True(t, state.IsTerminal())
	})

	t.Run("Game continues when the board is not full", func(t *testing.T) {
		// Given: a board that is still in play
		board := Board{
			x, o, e,
			e, x, e,
			e, e, o,
		}

		// When: evaluating the board
		state := Evaluate(board)

		// Then: nothing is terminal
		assert.Equal(t, TerminalState{}, state)
		assert.False(t, state.IsTerminal())
	})
}

func TestEvaluate_WinnerOccupiesLine(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		// Given: a random board
		var board Board
		for cell := range board {
			board[cell] = Mark(rng.Intn(3))
		}

		// When: evaluating the board
		state := Evaluate(board)

		// Then: a winner occupies exactly its three line cells, and a non-winner has no line
		if state.Winner == Empty {
			require.Empty(t, state.Line)
			continue
		}

		require.Len(t, state.Line, 3)
		require.False(t, state.IsDraw)
		for _, cell := range state.Line {
			require.Equal(t, state.Winner, board[cell], "board %v", board)
		}
	}
}

func TestBoard_With(t *testing.T) {
	// Given: an empty board
	var board Board

	// When: placing a mark
	next := board.With(4, PlayerX)

	// Then: the new board has the mark and the original is untouched
	assert.Equal(t, PlayerX, next[4])
	assert.Equal(t, Board{}, board)
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, next.EmptyCells())
	assert.False(t, next.IsFull())
}

func TestMark(t *testing.T) {
	t.Run("Opponent toggles between players", func(t *testing.T) {
		assert.Equal(t, PlayerO, PlayerX.Opponent())
		assert.Equal(t, PlayerX, PlayerO.Opponent())
		assert.Equal(t, Empty, Empty.Opponent())
	})

	t.Run("JSON uses the mark letter", func(t *testing.T) {
		// Given: a board with marks
		board := Board{x, o}

		// When: encoding it
		raw, err := json.Marshal(board)
		require.NoError(t, err)

		// Then: cells are letters and empty cells are empty strings
		assert.JSONEq(t, `["X","O","","","","","","",""]`, string(raw))

		var decoded Board
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, board, decoded)
	})

	t.Run("ParseMark rejects unknown values", func(t *testing.T) {
		_, err := ParseMark("Z")
		require.Error(t, err)
	})
}

func TestPlayerConfig(t *testing.T) {
	t.Run("Validate accepts a human game", func(t *testing.T) {
		cfg := PlayerConfig{NameX: "Ann", NameO: "Bob", Starting: PlayerO}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Validate allows an empty O name against the computer", func(t *testing.T) {
		cfg := PlayerConfig{NameX: "Ann", Starting: PlayerX, OIsComputer: true}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Validate rejects blank names after normalizing", func(t *testing.T) {
		cfg := PlayerConfig{NameX: "   ", NameO: "Bob", Starting: PlayerX}.Normalize()
		assert.ErrorIs(t, cfg.Validate(), ErrEmptyPlayerName)
	})

	t.Run("Validate rejects an empty starting mark", func(t *testing.T) {
		cfg := PlayerConfig{NameX: "Ann", NameO: "Bob"}
		assert.ErrorIs(t, cfg.Validate(), ErrBadStartingMark)
	})

	t.Run("DisplayName uses the computer label for O", func(t *testing.T) {
		cfg := PlayerConfig{NameX: "Ann", NameO: "ignored", Starting: PlayerX, OIsComputer: true}

		assert.Equal(t, "Ann", cfg.DisplayName(PlayerX, DefaultComputerName))
		assert.Equal(t, DefaultComputerName, cfg.DisplayName(PlayerO, DefaultComputerName))
		assert.Equal(t, PlayerO, cfg.ComputerMark())
	})
}
