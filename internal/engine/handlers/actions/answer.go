package actions

import (
	"wisp-server/internal/engine/handlers"
	"wisp-server/pkg/api"
)

func HandleAnswer(ctx handlers.Context, p api.AnswerPayload) (handlers.Result, error) {
	if _, err := ctx.Game.Answer(p.Answer); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}
