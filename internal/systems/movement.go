package systems

import (
	"wisp-server/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Target      domain.Position
	HasMoved    bool
	OutOfBounds bool            // Уперлись в край карты
	BlockedBy   domain.CellKind // Непроходимая клетка (валидно, если IsWall)
	IsWall      bool
	Occupied    bool // Клетка занята (игроком для огонька)
}

// CalculateMove вычисляет новую позицию. Не меняет состояние карты!
// occupied - клетки, на которые шагать нельзя, даже если они проходимы.
func CalculateMove(from domain.Position, dx, dy int, grid *domain.Grid, occupied ...domain.Position) MovementResult {
	target := from.Shift(dx, dy)
	res := MovementResult{Target: target}

	// 1. Границы
	if !grid.InBounds(target) {
		res.OutOfBounds = true
		return res
	}

	// 2. Рельеф
	if cell := grid.At(target); !cell.Passable {
		res.IsWall = true
		res.BlockedBy = cell.Kind
		return res
	}

	// 3. Занятые клетки
	for _, p := range occupied {
		if p == target {
			res.Occupied = true
			return res
		}
	}

	res.HasMoved = true
	return res
}

func checkMove(from domain.Position, dx, dy int, grid *domain.Grid, occupied ...domain.Position) bool {
	return CalculateMove(from, dx, dy, grid, occupied...).HasMoved
}
