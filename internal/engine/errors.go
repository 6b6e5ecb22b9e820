package engine

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownAction   = errors.New("unknown action")
	ErrCheatsDisabled  = errors.New("cheats are disabled")
)
