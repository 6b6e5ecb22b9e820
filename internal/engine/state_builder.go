package engine

import (
	"strconv"
	"strings"

	"wisp-server/internal/domain"
	"wisp-server/internal/game"
	"wisp-server/internal/skillcheck"
	"wisp-server/pkg/api"
)

// publishUpdate рассылает снимок партии подписчику инстанса. Вызывается под i.mu.
func (s *GameService) publishUpdate(instance *Instance) {
	state := s.BuildState(instance)
	s.Hub.SendTo(instance.ID, *state)
}

// publishError отправляет клиенту только журнал с ошибкой. Вызывается под i.mu.
func (s *GameService) publishError(instance *Instance) {
	instance.collectGameMessages()
	s.Hub.SendTo(instance.ID, api.ServerResponse{
		Type:      api.ResponseError,
		SessionID: instance.ID,
		Tick:      instance.Game.Stats().Tick,
		Logs:      instance.takeLogs(),
	})
}

// BuildState создает полный снимок партии. Забирает накопленные логи,
// поэтому вызывается под i.mu.
func (s *GameService) BuildState(instance *Instance) *api.ServerResponse {
	instance.collectGameMessages()
	view := instance.Game.Snapshot()

	resp := BuildViewState(view)
	resp.SessionID = instance.ID
	resp.Logs = instance.takeLogs()

	if view.Encounter != nil && instance.check != nil {
		resp.SkillCheck = &api.SkillCheckView{
			WispID: wispID(*view.Encounter),
			Rarity: view.Encounter.Rarity.String(),
			Phase:  strings.ToUpper(skillcheck.PhaseRunning.String()),
		}
	}
	return resp
}

// BuildViewState конвертирует снимок партии в DTO (без логов)
func BuildViewState(view game.View) *api.ServerResponse {
	grid := view.Grid

	mapDTO := make([]api.TileView, 0, len(grid.Cells))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			cell := grid.Cells[grid.GetIndex(x, y)]
			glyph := cell.Kind.Glyph()
			mapDTO = append(mapDTO, api.TileView{
				X:        x,
				Y:        y,
				Kind:     cell.Kind.String(),
				Symbol:   string(glyph.Rune()),
				Color:    glyph.HexColor(),
				Passable: cell.Passable,
			})
		}
	}

	wisps := make([]api.WispView, 0, len(view.Wisps))
	for _, w := range view.Wisps {
		wisps = append(wisps, toWispView(w))
	}

	resp := &api.ServerResponse{
		Type:   api.ResponseUpdate,
		Tick:   view.Stats.Tick,
		Grid:   &api.GridMeta{Width: grid.Width, Height: grid.Height},
		Map:    mapDTO,
		Player: &api.PositionView{X: view.Player.X, Y: view.Player.Y},
		Wisps:  wisps,
		Stats:  toStatsView(view.Stats),
	}

	if view.Quiz != nil {
		resp.Quiz = &api.QuizView{
			TargetWord: view.Quiz.Word.TargetWord,
			Options:    view.Quiz.Options,
			Treasure:   api.PositionView{X: view.Quiz.Treasure.X, Y: view.Quiz.Treasure.Y},
		}
	}
	return resp
}

// BuildSkillCheckState - кадр проверки навыка
func BuildSkillCheckState(sessionID string, w domain.WispSnapshot, u skillcheck.Update, cfg skillcheck.Config) api.ServerResponse {
	view := &api.SkillCheckView{
		WispID:    wispID(w),
		Rarity:    w.Rarity.String(),
		Phase:     strings.ToUpper(u.Phase.String()),
		Marker:    u.Marker,
		ZoneMin:   skillcheck.ScaleCenter - cfg.SuccessThreshold,
		ZoneMax:   skillcheck.ScaleCenter + cfg.SuccessThreshold,
		Bounces:   u.Bounces,
		Direction: int(u.Direction),
	}
	if u.Outcome != nil {
		view.Finished = true
		view.Caught = u.Outcome.Caught
		view.Reward = u.Outcome.RewardMultiplier
	}

	return api.ServerResponse{
		Type:       api.ResponseSkillCheck,
		SessionID:  sessionID,
		SkillCheck: view,
	}
}

func toWispView(w domain.WispSnapshot) api.WispView {
	view := api.WispView{
		ID:       wispID(w),
		Name:     w.Name,
		Rarity:   w.Rarity.String(),
		Speed:    w.Speed,
		State:    w.State.String(),
		Captured: w.Captured,
		Pos:      api.PositionView{X: w.Pos.X, Y: w.Pos.Y},
	}
	glyph := w.Rarity.Glyph()
	view.Render.Symbol = string(glyph.Rune())
	view.Render.Color = glyph.HexColor()
	return view
}

func toStatsView(st game.Stats) *api.StatsView {
	return &api.StatsView{
		Score:              st.Score,
		Multiplier:         st.Multiplier,
		TreasuresTotal:     st.TreasuresTotal,
		TreasuresCollected: st.TreasuresCollected,
		WispsCaptured:      st.WispsCaptured,
		MapsPlayed:         st.MapsPlayed,
		Won:                st.Won,
		Language:           st.Language,
	}
}

// wispID - тот же формат, что и JSON у types.EntityID
func wispID(w domain.WispSnapshot) string {
	return strconv.FormatUint(uint64(w.ID), 10)
}
