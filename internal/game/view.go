package game

import (
	"strings"

	"wisp-server/internal/domain"
)

// ASCII рисует карту с игроком '@' и непойманными огоньками 'w'
func (v View) ASCII() string {
	if v.Grid == nil {
		return ""
	}

	rows := make([][]byte, v.Grid.Height)
	for y := range rows {
		rows[y] = make([]byte, v.Grid.Width)
		for x := range rows[y] {
			rows[y][x] = v.Grid.Kind(domain.Position{X: x, Y: y}).Glyph().Char()
		}
	}
	for _, w := range v.Wisps {
		if !w.Captured && v.Grid.InBounds(w.Pos) {
			rows[w.Pos.Y][w.Pos.X] = w.Rarity.Glyph().Char()
		}
	}
	if v.Grid.InBounds(v.Player) {
		rows[v.Player.Y][v.Player.X] = '@'
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
