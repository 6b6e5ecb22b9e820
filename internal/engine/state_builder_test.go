package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp-server/internal/core/types"
	"wisp-server/internal/domain"
	"wisp-server/internal/game"
	"wisp-server/internal/skillcheck"
	"wisp-server/pkg/api"
)

func TestBuildViewState(t *testing.T) {
	grid, err := domain.ParseGrid(
		".~$",
		"T:O",
	)
	require.NoError(t, err)

	view := game.View{
		Grid:   grid,
		Player: domain.Position{X: 0, Y: 0},
		Wisps: []domain.WispSnapshot{{
			ID:     types.PackEntityID(2, 1, 0),
			Name:   "Wisp 1",
			Rarity: domain.RarityRare,
			Speed:  1,
			Pos:    domain.Position{X: 2, Y: 1},
		}},
		Quiz: &game.Quiz{
			Treasure: domain.Position{X: 2, Y: 0},
			Word:     game.Word{English: "water", TargetWord: "acqua"},
			Options:  []string{"tree", "water"},
		},
		Stats: game.Stats{Tick: 4, Score: 20, Multiplier: 1, TreasuresTotal: 1},
	}

	resp := BuildViewState(view)
	assert.Equal(t, api.ResponseUpdate, resp.Type)
	assert.Equal(t, 4, resp.Tick)
	assert.Equal(t, &api.GridMeta{Width: 3, Height: 2}, resp.Grid)
	require.Len(t, resp.Map, 6)

	water := resp.Map[1]
	assert.Equal(t, 1, water.X)
	assert.Equal(t, "water", water.Kind)
	assert.Equal(t, "~", water.Symbol)
	assert.False(t, water.Passable)

	cave := resp.Map[5]
	assert.Equal(t, "cave", cave.Kind)
	assert.True(t, cave.Passable)

	require.Len(t, resp.Wisps, 1)
	w := resp.Wisps[0]
	assert.Equal(t, "rare", w.Rarity)
	assert.Equal(t, "w", w.Render.Symbol)
	assert.Equal(t, api.PositionView{X: 2, Y: 1}, w.Pos)

	// Правильный ответ клиенту не уходит
	require.NotNil(t, resp.Quiz)
	assert.Equal(t, "acqua", resp.Quiz.TargetWord)
	assert.Equal(t, []string{"tree", "water"}, resp.Quiz.Options)

	assert.Equal(t, 20, resp.Stats.Score)
}

func TestBuildSkillCheckState(t *testing.T) {
	cfg := skillcheck.DefaultConfig()
	w := domain.WispSnapshot{ID: types.PackEntityID(2, 3, 1), Rarity: domain.RarityUncommon}

	running := BuildSkillCheckState("s1", w, skillcheck.Update{
		Phase:     skillcheck.PhaseRunning,
		Marker:    70,
		Direction: skillcheck.DirLeft,
		Bounces:   2,
	}, cfg)
	assert.Equal(t, api.ResponseSkillCheck, running.Type)
	require.NotNil(t, running.SkillCheck)
	assert.Equal(t, "RUNNING", running.SkillCheck.Phase)
	assert.Equal(t, 35.0, running.SkillCheck.ZoneMin)
	assert.Equal(t, 65.0, running.SkillCheck.ZoneMax)
	assert.Equal(t, -1, running.SkillCheck.Direction)
	assert.False(t, running.SkillCheck.Finished)

	final := BuildSkillCheckState("s1", w, skillcheck.Update{
		Phase:   skillcheck.PhaseSuccess,
		Marker:  50,
		Outcome: &skillcheck.Outcome{Caught: true, RewardMultiplier: 2},
	}, cfg)
	assert.True(t, final.SkillCheck.Finished)
	assert.True(t, final.SkillCheck.Caught)
	assert.Equal(t, 2, final.SkillCheck.Reward)
	assert.Equal(t, "SUCCESS", final.SkillCheck.Phase)
}
