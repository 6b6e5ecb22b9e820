package game

import "errors"

var (
	ErrEncounterActive = errors.New("wisp encounter in progress")
	ErrQuizPending     = errors.New("answer the treasure quiz first")
	ErrNoQuiz          = errors.New("no quiz is open")
	ErrNoEncounter     = errors.New("no wisp encounter is pending")
	ErrBlocked         = errors.New("can't move there")
	ErrBadDirection    = errors.New("unknown direction")
)
