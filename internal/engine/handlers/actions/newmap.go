package actions

import (
	"wisp-server/internal/engine/handlers"
	"wisp-server/internal/game"
)

// HandleNewMap - новая карта. Счет и пойманные огоньки сохраняются.
// Во время встречи запрещено: проверку навыка нельзя бросить.
func HandleNewMap(ctx handlers.Context) (handlers.Result, error) {
	if _, pending := ctx.Game.PendingEncounter(); pending {
		return handlers.EmptyResult(), game.ErrEncounterActive
	}
	if err := ctx.Game.NewMap(); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}
