package skillcheck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp-server/internal/domain"
)

func advanceN(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Advance()
	}
}

func TestSession_StartsRightMovingLeft(t *testing.T) {
	s := NewSession(domain.RarityCommon, DefaultConfig())
	assert.Equal(t, ScaleMax, s.Marker())
	assert.Equal(t, PhaseRunning, s.Phase())

	u := s.Advance()
	assert.Equal(t, 99.0, u.Marker)
	assert.Equal(t, DirLeft, u.Direction)
	assert.Equal(t, 1, u.Ticks)

	_, ok := s.Outcome()
	assert.False(t, ok)
}

func TestSession_Bounce(t *testing.T) {
	s := NewSession(domain.RarityCommon, DefaultConfig())

	advanceN(s, 99)
	assert.Equal(t, 1.0, s.Marker())
	assert.Equal(t, 0, s.Snapshot().Bounces)

	u := s.Advance()
	assert.Equal(t, 0.0, u.Marker)
	assert.Equal(t, DirRight, u.Direction)
	assert.Equal(t, 1, u.Bounces)

	u = s.Advance()
	assert.Equal(t, 1.0, u.Marker)

	advanceN(s, 99)
	u = s.Snapshot()
	assert.Equal(t, 100.0, u.Marker)
	assert.Equal(t, DirLeft, u.Direction)
	assert.Equal(t, 2, u.Bounces)
}

func TestSession_FailsAfterMaxBounces(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(domain.RarityRare, cfg)

	ticks := 0
	for s.Phase() == PhaseRunning {
		s.Advance()
		ticks++
		require.GreaterOrEqual(t, s.Marker(), ScaleMin)
		require.LessOrEqual(t, s.Marker(), ScaleMax)
		require.Less(t, ticks, 10000, "session never ended")
	}

	assert.Equal(t, PhaseFail, s.Phase())
	assert.Equal(t, cfg.MaxBounces*100, ticks)
	assert.Equal(t, cfg.MaxBounces, s.Snapshot().Bounces)

	out, ok := s.Outcome()
	require.True(t, ok)
	assert.Equal(t, Outcome{Caught: false, RewardMultiplier: 1}, out)

	// После конца часы ничего не двигают
	before := s.Snapshot()
	s.Advance()
	assert.Equal(t, before, s.Snapshot())
}

func TestSession_Strike(t *testing.T) {
	tests := []struct {
		name   string
		ticks  int
		marker float64
		want   Phase
	}{
		{"at start", 0, 100, PhaseFail},
		{"dead center", 50, 50, PhaseSuccess},
		{"zone edge right", 35, 65, PhaseSuccess},
		{"zone edge left", 65, 35, PhaseSuccess},
		{"just outside", 66, 34, PhaseFail},
		{"left wall", 100, 0, PhaseFail},
		{"on the way back", 150, 50, PhaseSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(domain.RarityUncommon, DefaultConfig())
			advanceN(s, tt.ticks)
			require.Equal(t, tt.marker, s.Marker())

			assert.True(t, s.Strike())
			assert.Equal(t, tt.want, s.Phase())

			out, ok := s.Outcome()
			require.True(t, ok)
			if tt.want == PhaseSuccess {
				assert.Equal(t, Outcome{Caught: true, RewardMultiplier: 2}, out)
			} else {
				assert.Equal(t, Outcome{Caught: false, RewardMultiplier: 1}, out)
			}
		})
	}
}

func TestSession_LateStrikeIgnored(t *testing.T) {
	s := NewSession(domain.RarityCommon, DefaultConfig())
	advanceN(s, 50)
	require.True(t, s.Strike())
	require.Equal(t, PhaseSuccess, s.Phase())

	assert.False(t, s.Strike())
	assert.Equal(t, PhaseSuccess, s.Phase())
}

func TestConfig_Period(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 10*time.Millisecond, cfg.Period(domain.RarityRare))
	assert.Equal(t, 20*time.Millisecond, cfg.Period(domain.RarityUncommon))
	assert.Equal(t, 30*time.Millisecond, cfg.Period(domain.RarityCommon))

	// Нулевой конфиг превращается в значения по умолчанию
	s := NewSession(domain.RarityRare, Config{})
	assert.Equal(t, DefaultConfig().MaxBounces, s.cfg.MaxBounces)
}

func TestReplay(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, Outcome{Caught: true, RewardMultiplier: 2}, Replay(domain.RarityRare, cfg, 50, true))
	assert.Equal(t, Outcome{Caught: false, RewardMultiplier: 1}, Replay(domain.RarityRare, cfg, 3, true))
	assert.Equal(t, Outcome{Caught: false, RewardMultiplier: 1}, Replay(domain.RarityRare, cfg, 1200, false))
	// Оборванная запись без удара доигрывается до провала
	assert.Equal(t, Outcome{Caught: false, RewardMultiplier: 1}, Replay(domain.RarityRare, cfg, 10, false))
}
