package tui

import (
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
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

// fakeCanvas запоминает нарисованные символы
type fakeCanvas map[domain.Position]rune

func (c fakeCanvas) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	c[domain.Position{X: x, Y: y}] = r
}

func (c fakeCanvas) line(y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, ok := c[domain.Position{X: x, Y: y}]
		if !ok {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestSkillBar(t *testing.T) {
	tests := []struct {
		name   string
		marker float64
		want   string
	}{
		{"center", 50, "[----=|==---]"},
		{"left edge", 0, "[|---====---]"},
		{"right edge", 100, "[----====--|]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SkillBar(skillcheck.Update{Marker: tt.marker}, 15, 11)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusLine(t *testing.T) {
	st := game.Stats{Score: 30, Multiplier: 2, TreasuresTotal: 5, TreasuresCollected: 3, WispsCaptured: 1, MapsPlayed: 2}
	assert.Equal(t, "Score: 30  Treasures: 3/5  Wisps: 1  Map: 2  x2", StatusLine(st))

	st.Multiplier = 1
	st.Won = true
	assert.Contains(t, StatusLine(st), "CLEARED!")
}

func TestQuizLines(t *testing.T) {
	q := &game.Quiz{
		Word:    game.Word{TargetWord: "sqwel", English: "fish"},
		Options: []string{"tree", "fish"},
	}
	assert.Equal(t, []string{
		`Translate "sqwel" to English:`,
		"  1) tree",
		"  2) fish",
	}, QuizLines(q))
}

func TestDrawMap(t *testing.T) {
	grid, err := domain.ParseGrid("..~", "T$.")
	require.NoError(t, err)

	v := game.View{
		Grid:   grid,
		Player: domain.Position{X: 0, Y: 0},
		Wisps: []domain.WispSnapshot{
			{Rarity: domain.RarityRare, Pos: domain.Position{X: 2, Y: 1}},
			{Rarity: domain.RarityCommon, Pos: domain.Position{X: 1, Y: 0}, Captured: true},
		},
	}

	c := fakeCanvas{}
	DrawMap(c, 0, 0, v)
	assert.Equal(t, "@.~", c.line(0, 3))
	assert.Equal(t, "T$w", c.line(1, 3))
}
