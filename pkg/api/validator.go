package api

import (
	"errors"
	"fmt"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

var validDirections = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"north": true, "south": true, "west": true, "east": true,
	"n": true, "s": true, "w": true, "e": true,
	"a": true, "d": true,
}

func (p DirectionPayload) Validate() error {
	if p.Direction == "" {
		return errors.New("direction is required")
	}
	if !validDirections[strings.ToLower(strings.TrimSpace(p.Direction))] {
		return fmt.Errorf("unknown direction %q", p.Direction)
	}
	return nil
}

func (p AnswerPayload) Validate() error {
	if strings.TrimSpace(p.Answer) == "" {
		return errors.New("answer is required")
	}
	return nil
}

func (p TextPayload) Validate() error {
	if strings.TrimSpace(p.Line) == "" {
		return errors.New("line is required")
	}
	return nil
}

func (p ResolvePayload) Validate() error {
	if p.Ticks < 0 {
		return errors.New("ticks cannot be negative")
	}
	return nil
}

func (p SpawnWispPayload) Validate() error {
	if p.Rarity == "" {
		return errors.New("rarity is required")
	}
	return nil
}
