package apperror

import "errors"

var (
	ErrIllegalCell        = errors.New("cell is occupied or out of range")
	ErrGameAlreadyOver    = errors.New("game is already over")
	ErrInvalidMoveIndex   = errors.New("move index is out of history bounds")
	ErrInvalidConfigState = errors.New("players can only be configured while awaiting configuration")
	ErrNoLegalMove        = errors.New("no legal move")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrInvalidConfig      = errors.New("invalid player configuration")
	ErrInvalidMark        = errors.New("invalid mark")
	ErrSessionNotFound    = errors.New("session not found")
)
