package actions

import (
	"fmt"

	"wisp-server/internal/domain"
	"wisp-server/internal/engine/handlers"
)

// HandleInit ничего не меняет: клиент получает полный снимок
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	st := ctx.Game.Stats()
	return handlers.Result{
		Msg:     fmt.Sprintf("Welcome to Wisp Trail. Treasures left: %d.", st.TreasuresTotal-st.TreasuresCollected),
		MsgType: domain.MsgInfo,
	}, nil
}
