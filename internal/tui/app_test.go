package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp-server/internal/audio"
	"wisp-server/internal/domain"
	"wisp-server/internal/game"
)

type recordingSound struct {
	cues []audio.Cue
}

func (r *recordingSound) Play(c audio.Cue) { r.cues = append(r.cues, c) }

// tinyGame - карта 1x1: любой ход упирается в край
func tinyGame(t *testing.T) *game.GameSession {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Seed = 11
	cfg.Width = 1
	cfg.Height = 1

	g, err := game.NewGameSession(cfg, nil)
	require.NoError(t, err)
	return g
}

func TestApp_BlockedMove(t *testing.T) {
	sound := &recordingSound{}
	a := New(nil, tinyGame(t), sound)

	a.Apply(Intent{Kind: IntentMove, Dir: domain.DirLeft})

	assert.Equal(t, []audio.Cue{audio.CueBlocked}, sound.cues)
	msgs := a.Messages()
	require.NotEmpty(t, msgs)
	last := msgs[len(msgs)-1]
	assert.Equal(t, domain.MsgWarning, last.Type)
	assert.Contains(t, last.Text, "edge of the map")
	assert.Equal(t, ModeExplore, a.Mode())
}

func TestApp_NewMapAndQuit(t *testing.T) {
	g := tinyGame(t)
	a := New(nil, g, nil)

	a.Apply(Intent{Kind: IntentNewMap})
	assert.Equal(t, 2, g.Stats().MapsPlayed)
	assert.False(t, a.quit)

	// Без открытого квиза ответ ничего не делает
	a.Apply(Intent{Kind: IntentAnswer, Option: 0})
	a.Apply(Intent{Kind: IntentStrike})

	a.Apply(Intent{Kind: IntentQuit})
	assert.True(t, a.quit)
}

func TestApp_MessagesAreTrimmed(t *testing.T) {
	a := New(nil, tinyGame(t), nil)
	for i := 0; i < visibleMessages*2; i++ {
		a.Apply(Intent{Kind: IntentMove, Dir: domain.DirUp})
	}
	assert.Len(t, a.Messages(), visibleMessages)
}

func TestApp_Render(t *testing.T) {
	a := New(nil, tinyGame(t), nil)

	c := fakeCanvas{}
	a.Render(c)

	assert.Equal(t, '@', c[domain.Position{X: 0, Y: 0}])
	assert.Equal(t, "Score: 0", c.line(2, 8))
	assert.Equal(t, "Arrows", c.line(4, 6))
}
