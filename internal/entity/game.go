package entity

import (
	"fmt"
)

// Mark is the content of a single board cell.
type Mark uint8

const (
	Empty Mark = iota
	PlayerX
	PlayerO
)

// BoardSize is the number of cells on a 3x3 board.
const BoardSize = 9

// WinCombos lists every winning triple in evaluation order: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Mark) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other playing mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// IsPlayer reports whether the mark is X or O.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Mark) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}

// ParseMark converts "X", "O" or "" into a Mark.
func ParseMark(s string) (Mark, error) {
	switch s {
	case "X", "x":
		return PlayerX, nil
	case "O", "o":
		return PlayerO, nil
	case "":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("unknown mark %q", s)
	}
}

// Board is an immutable 3x3 grid in row-major order.
type Board [BoardSize]Mark

// With returns a copy of the board with cell set to mark.
func (that Board) With(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

// EmptyCells returns the indices of all empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// TerminalState is the win/draw condition of a board. It is always derived, never stored.
type TerminalState struct {
	Winner Mark  `json:"winner"`
	Line   []int `json:"line,omitempty"`
	IsDraw bool  `json:"is_draw"`
}

func (that TerminalState) IsTerminal() bool {
	return that.Winner != Empty || that.IsDraw
}

// Evaluate returns the first completed triple in WinCombos order, a draw for a full board, or a non-terminal state.
func Evaluate(board Board) TerminalState {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			return TerminalState{
				Winner: a,
				Line:   []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	// the game will continue until all the squares are full
	return TerminalState{IsDraw: board.IsFull()}
}
