package domain

import (
	"fmt"
	"strings"
)

// Grid - карта фиксированного размера в виде плоского буфера.
// Индекс клетки: Y * Width + X.
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
}

// NewGrid создает карту, заполненную клетками одного типа
func NewGrid(width, height int, fill CellKind) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	cell := NewCell(fill)
	for i := range g.Cells {
		g.Cells[i] = cell
	}
	return g
}

func (g *Grid) GetIndex(x, y int) int {
	return y*g.Width + x
}

// InBounds проверяет, что координата внутри карты
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// At возвращает клетку. Для координат вне карты - непроходимая вода.
func (g *Grid) At(p Position) Cell {
	if !g.InBounds(p) {
		return NewCell(CellWater)
	}
	return g.Cells[g.GetIndex(p.X, p.Y)]
}

// Kind - сокращение для At(p).Kind
func (g *Grid) Kind(p Position) CellKind {
	return g.At(p).Kind
}

// IsPassable проверяет границы и проходимость
func (g *Grid) IsPassable(p Position) bool {
	return g.InBounds(p) && g.Cells[g.GetIndex(p.X, p.Y)].Passable
}

// Set меняет тип клетки. Используется только генератором и сбором сокровищ.
func (g *Grid) Set(p Position, kind CellKind) error {
	if !g.InBounds(p) {
		return fmt.Errorf("set %s at (%d,%d): %w", kind, p.X, p.Y, ErrOutOfBounds)
	}
	g.Cells[g.GetIndex(p.X, p.Y)] = NewCell(kind)
	return nil
}

// CollectTreasure - единственная мутация карты после генерации: treasure -> path.
// Возвращает false, если в клетке нет сокровища.
func (g *Grid) CollectTreasure(p Position) bool {
	if g.Kind(p) != CellTreasure {
		return false
	}
	g.Cells[g.GetIndex(p.X, p.Y)] = NewCell(CellPath)
	return true
}

// Count считает клетки заданного типа
func (g *Grid) Count(kind CellKind) int {
	n := 0
	for _, c := range g.Cells {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// PassableCount считает проходимые клетки
func (g *Grid) PassableCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.Passable {
			n++
		}
	}
	return n
}

// Clone возвращает независимую копию карты
func (g *Grid) Clone() *Grid {
	cp := &Grid{Width: g.Width, Height: g.Height, Cells: make([]Cell, len(g.Cells))}
	copy(cp.Cells, g.Cells)
	return cp
}

// String рисует карту символами глифов (для debug-эндпоинта и тестов)
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			sb.WriteByte(g.Cells[g.GetIndex(x, y)].Kind.Glyph().Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid собирает карту из строк символов глифов (обратная операция к String).
// Все строки должны быть одной длины.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0, CellGrass), nil
	}
	g := NewGrid(len(rows[0]), len(rows), CellGrass)
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("row %d: width %d, want %d", y, len(row), g.Width)
		}
		for x := 0; x < len(row); x++ {
			kind, ok := kindByChar(row[x])
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unknown cell %q", y, x, row[x])
			}
			g.Cells[g.GetIndex(x, y)] = NewCell(kind)
		}
	}
	return g, nil
}

func kindByChar(c byte) (CellKind, bool) {
	for kind, info := range cellTable {
		if info.glyph.Char() == c {
			return kind, true
		}
	}
	return CellGrass, false
}
