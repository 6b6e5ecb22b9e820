package systems

import (
	"wisp-server/internal/domain"
)

type step struct{ dx, dy int }

// evasionCandidates строит упорядоченный список шагов "от игрока".
// (dx, dy) = player - wisp. Основная ось - с большим модулем, при
// равенстве - X. Порядок: прочь по основной оси, прочь по второй
// (если разница по ней не нулевая), затем вбок вдоль осей с нулевой
// разницей (+1, потом -1).
func evasionCandidates(dx, dy int) []step {
	candidates := make([]step, 0, 4)

	xPrimary := absInt(dx) >= absInt(dy)
	awayX := step{-domain.Sign(dx), 0}
	awayY := step{0, -domain.Sign(dy)}

	if xPrimary {
		if dx != 0 {
			candidates = append(candidates, awayX)
		}
		if dy != 0 {
			candidates = append(candidates, awayY)
		}
	} else {
		candidates = append(candidates, awayY)
		if dx != 0 {
			candidates = append(candidates, awayX)
		}
	}

	if dx == 0 {
		candidates = append(candidates, step{1, 0}, step{-1, 0})
	}
	if dy == 0 {
		candidates = append(candidates, step{0, 1}, step{0, -1})
	}
	return candidates
}

// ComputeEvasionStep выбирает клетку, куда огонек уходит от игрока.
// Шаг принимается, если он в границах, на проходимой клетке и не на игроке.
// Если подходящего шага нет, огонек остается на месте (ok == false).
func ComputeEvasionStep(wisp, player domain.Position, grid *domain.Grid) (domain.Position, bool) {
	dx := player.X - wisp.X
	dy := player.Y - wisp.Y

	for _, c := range evasionCandidates(dx, dy) {
		if checkMove(wisp, c.dx, c.dy, grid, player) {
			return wisp.Shift(c.dx, c.dy), true
		}
	}
	return wisp, false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
