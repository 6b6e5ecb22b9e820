package actions

import (
	"fmt"

	"wisp-server/internal/domain"
	"wisp-server/internal/engine/handlers"
	"wisp-server/pkg/api"
)

func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	dir := domain.ParseDirection(p.Direction)

	res, err := ctx.Game.Move(dir)
	if err != nil {
		return handlers.EmptyResult(), fmt.Errorf("move %s: %w", dir, err)
	}

	// Встреча: проверку навыка ведет инстанс, итог придет позже
	if res.Encounter != nil {
		ctx.Encounters.StartSkillCheck(*res.Encounter)
	}

	return handlers.EmptyResult(), nil
}
