package admin

import (
	"fmt"

	"wisp-server/internal/domain"
	"wisp-server/internal/engine/handlers"
	"wisp-server/pkg/api"
)

// HandleTeleport: { "x": 10, "y": 10 }
func HandleTeleport(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	if err := ctx.Game.Teleport(domain.Position{X: p.X, Y: p.Y}); err != nil {
		return handlers.EmptyResult(), fmt.Errorf("teleport failed: %w", err)
	}
	return handlers.Result{Msg: "Teleported via admin magic", MsgType: domain.MsgInfo}, nil
}

// HandleSpawnWisp: { "rarity": "rare", "x": 3, "y": 4 }
func HandleSpawnWisp(ctx handlers.Context, p api.SpawnWispPayload) (handlers.Result, error) {
	rarity, ok := domain.ParseRarity(p.Rarity)
	if !ok {
		return handlers.EmptyResult(), fmt.Errorf("unknown rarity %q", p.Rarity)
	}

	w, err := ctx.Game.PlaceWisp(rarity, domain.Position{X: p.X, Y: p.Y})
	if err != nil {
		return handlers.EmptyResult(), fmt.Errorf("spawn failed: %w", err)
	}
	return handlers.Result{Msg: fmt.Sprintf("Spawned %s %s", w.Rarity, w.ID), MsgType: domain.MsgInfo}, nil
}
