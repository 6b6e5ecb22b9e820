package actions

import (
	"wisp-server/internal/engine/handlers"
	"wisp-server/internal/game"
)

func HandleStrike(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Encounters.Strike() {
		return handlers.EmptyResult(), game.ErrNoEncounter
	}
	return handlers.EmptyResult(), nil
}
