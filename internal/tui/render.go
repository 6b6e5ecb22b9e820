package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"wisp-server/internal/core/types"
	"wisp-server/internal/domain"
	"wisp-server/internal/game"
	"wisp-server/internal/skillcheck"
)

// Canvas - то, во что рисуем. tcell.Screen его реализует.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var (
	styleText    = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleSuccess = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleZone    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleMarker  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

const BarWidth = 51

func glyphStyle(g types.Glyph) tcell.Style {
	r, gr, b := g.RGB()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, gr, b))
}

func messageStyle(kind string) tcell.Style {
	switch kind {
	case domain.MsgSuccess:
		return styleSuccess
	case domain.MsgWarning:
		return styleWarning
	case domain.MsgError:
		return styleError
	}
	return styleText
}

// DrawText пишет строку и возвращает x за ее концом
func DrawText(c Canvas, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		c.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// DrawMap рисует карту, огоньков и игрока с левого верхнего угла (x0, y0)
func DrawMap(c Canvas, x0, y0 int, v game.View) {
	if v.Grid == nil {
		return
	}
	for y := 0; y < v.Grid.Height; y++ {
		for x := 0; x < v.Grid.Width; x++ {
			g := v.Grid.Kind(domain.Position{X: x, Y: y}).Glyph()
			c.SetContent(x0+x, y0+y, g.Rune(), nil, glyphStyle(g))
		}
	}
	for _, w := range v.Wisps {
		if w.Captured || !v.Grid.InBounds(w.Pos) {
			continue
		}
		g := w.Rarity.Glyph()
		c.SetContent(x0+w.Pos.X, y0+w.Pos.Y, g.Rune(), nil, glyphStyle(g))
	}
	c.SetContent(x0+v.Player.X, y0+v.Player.Y, '@', nil, stylePlayer)
}

// StatusLine - строка счета под картой
func StatusLine(st game.Stats) string {
	line := fmt.Sprintf("Score: %d  Treasures: %d/%d  Wisps: %d  Map: %d",
		st.Score, st.TreasuresCollected, st.TreasuresTotal, st.WispsCaptured, st.MapsPlayed)
	if st.Multiplier > 1 {
		line += fmt.Sprintf("  x%d", st.Multiplier)
	}
	if st.Won {
		line += "  CLEARED! (n - new map)"
	}
	return line
}

// QuizLines - вопрос и пронумерованные варианты
func QuizLines(q *game.Quiz) []string {
	lines := []string{fmt.Sprintf("Translate %q to English:", q.Word.TargetWord)}
	for i, opt := range q.Options {
		lines = append(lines, fmt.Sprintf("  %d) %s", i+1, opt))
	}
	return lines
}

// SkillBar - шкала проверки навыка шириной width.
// '=' - зона успеха, '|' - маркер, '-' - остальное.
func SkillBar(u skillcheck.Update, threshold float64, width int) string {
	if width < 2 {
		width = 2
	}
	cells := []byte(strings.Repeat("-", width))

	scale := skillcheck.ScaleMax - skillcheck.ScaleMin
	col := func(v float64) int {
		i := int(math.Round((v - skillcheck.ScaleMin) / scale * float64(width-1)))
		return max(0, min(width-1, i))
	}

	for i := col(skillcheck.ScaleCenter - threshold); i <= col(skillcheck.ScaleCenter+threshold); i++ {
		cells[i] = '='
	}
	cells[col(u.Marker)] = '|'
	return "[" + string(cells) + "]"
}

// DrawSkillBar рисует шкалу с цветной зоной
func DrawSkillBar(c Canvas, x, y int, u skillcheck.Update, threshold float64) {
	for i, r := range SkillBar(u, threshold, BarWidth) {
		style := styleDim
		switch r {
		case '=':
			style = styleZone
		case '|':
			style = styleMarker
		}
		c.SetContent(x+i, y, r, nil, style)
	}
}
