package domain

// Position - координата клетки. (0,0) - левый верхний угол.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift возвращает новую позицию со смещением (текущая не меняется)
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Chebyshev возвращает расстояние "хода короля": max(|dx|,|dy|)
func (p Position) Chebyshev(other Position) int {
	return max(absInt(p.X-other.X), absInt(p.Y-other.Y))
}

// Manhattan возвращает |dx|+|dy|
func (p Position) Manhattan(other Position) int {
	return absInt(p.X-other.X) + absInt(p.Y-other.Y)
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	return p != other && p.Chebyshev(other) <= 1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Sign возвращает -1, 0 или 1
func Sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
