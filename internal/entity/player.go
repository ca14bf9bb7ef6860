package entity

import (
	"errors"
	"strings"
)

const DefaultComputerName = "Computer"

var (
	ErrEmptyPlayerName = errors.New("player name is required")
	ErrBadStartingMark = errors.New("starting player must be X or O")
)

// PlayerConfig is captured once per session when the players are configured.
type PlayerConfig struct {
	NameX       string `json:"name_x"`
	NameO       string `json:"name_o"`
	Starting    Mark   `json:"starting"`
	OIsComputer bool   `json:"o_is_computer"`
}

// Normalize trims the player names.
func (that PlayerConfig) Normalize() PlayerConfig {
	that.NameX = strings.TrimSpace(that.NameX)
	that.NameO = strings.TrimSpace(that.NameO)

	return that
}

func (that PlayerConfig) Validate() error {
	if !that.Starting.IsPlayer() {
		return ErrBadStartingMark
	}

	if that.NameX == "" {
		return ErrEmptyPlayerName
	}

	if that.NameO == "" && !that.OIsComputer {
		return ErrEmptyPlayerName
	}

	return nil
}

// ComputerMark returns the mark played by the computer, or Empty when both players are human.
func (that PlayerConfig) ComputerMark() Mark {
	if that.OIsComputer {
		return PlayerO
	}

	return Empty
}

// DisplayName returns the name shown for mark. computerLabel replaces O's name when O is the computer.
func (that PlayerConfig) DisplayName(mark Mark, computerLabel string) string {
	switch mark {
	case PlayerX:
		return that.NameX
	case PlayerO:
		if that.OIsComputer {
			return computerLabel
		}
		return that.NameO
	default:
		return ""
	}
}
