package agent

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp-server/internal/domain"
	"wisp-server/internal/game"
	"wisp-server/internal/skillcheck"
	"wisp-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestSolveSkillCheck(t *testing.T) {
	cfg := skillcheck.DefaultConfig()

	for _, r := range domain.AllRarities {
		t.Run(r.String(), func(t *testing.T) {
			out, ticks := solveSkillCheck(r, cfg)
			assert.True(t, out.Caught)
			assert.Equal(t, 2, out.RewardMultiplier)
			// 100 -> 65: первый тик внутри зоны
			assert.Equal(t, 35, ticks)
		})
	}
}

func newBotGame(t *testing.T, seed int64, skillCheck bool) *game.GameSession {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Seed = seed
	cfg.UseSkillCheck = skillCheck

	g, err := game.NewGameSession(cfg, game.FallbackProvider{})
	require.NoError(t, err)
	return g
}

func TestBot_Run(t *testing.T) {
	tests := []struct {
		name       string
		seed       int64
		skillCheck bool
	}{
		{"skill check", 1, true},
		{"direct capture", 2, false},
		{"another map", 99, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newBotGame(t, tt.seed, tt.skillCheck)
			bot := NewBot(g)

			rep, err := bot.Run(context.Background(), 2000)
			require.NoError(t, err)

			assert.Equal(t, 2000, rep.Steps)
			assert.Positive(t, rep.Moves)
			assert.Positive(t, rep.Stats.Score)
			// Бот знает словарь, поэтому каждый квиз - это собранное сокровище
			assert.Equal(t, rep.Answers > 0, rep.Stats.Score > 0)
		})
	}
}

func TestBot_StepAnswersQuiz(t *testing.T) {
	g := newBotGame(t, 5, true)
	bot := NewBot(g)

	quizReady := func() bool {
		_, pending := g.PendingEncounter()
		return g.OpenQuiz() != nil && !pending
	}
	for i := 0; i < 5000 && !quizReady(); i++ {
		require.NoError(t, bot.Step())
	}
	q := g.OpenQuiz()
	require.NotNil(t, q)

	before := g.Stats()
	require.NoError(t, bot.Step())

	after := g.Stats()
	assert.Nil(t, g.OpenQuiz())
	assert.Greater(t, after.Score, before.Score)
	assert.Equal(t, 1, bot.Report().Answers)
}

func TestBot_RunCancelled(t *testing.T) {
	g := newBotGame(t, 3, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := NewBot(g).Run(ctx, 100)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rep.Steps)
}
