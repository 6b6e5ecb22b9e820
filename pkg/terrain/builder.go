package terrain

import (
	"math"
	"math/rand"

	"wisp-server/internal/domain"
)

// Builder предоставляет fluent API для пошаговой генерации карты.
// Порядок стадий важен: каждая следующая видит результат предыдущих.
type Builder struct {
	width   int
	height  int
	grid    *domain.Grid
	rng     *rand.Rand
	summary Summary
}

// NewBuilder создает карту, залитую травой. Размер меньше 1x1 поднимается до 1.
func NewBuilder(width, height int, rng *rand.Rand) *Builder {
	width = max(width, 1)
	height = max(height, 1)
	return &Builder{
		width:   width,
		height:  height,
		grid:    domain.NewGrid(width, height, domain.CellGrass),
		rng:     rng,
		summary: Summary{Width: width, Height: height},
	}
}

func (b *Builder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

func (b *Builder) randomPos() domain.Position {
	return domain.Position{X: b.rng.Intn(b.width), Y: b.rng.Intn(b.height)}
}

// WithWater - озера. Вода может лечь на что угодно.
func (b *Builder) WithWater() *Builder {
	n := b.randRange(MinWaterBodies, MaxWaterBodies)
	for i := 0; i < n; i++ {
		b.blob(b.randomPos(), b.randRange(MinWaterRadius, MaxWaterRadius), WaterChance, domain.CellWater, false)
	}
	return b
}

// WithForests - рощи, только поверх травы
func (b *Builder) WithForests() *Builder {
	n := b.randRange(MinForests, MaxForests)
	for i := 0; i < n; i++ {
		b.blob(b.randomPos(), b.randRange(MinForestRadius, MaxForestRadius), ForestChance, domain.CellTree, true)
	}
	return b
}

// WithMountains - горы, только поверх травы
func (b *Builder) WithMountains() *Builder {
	n := b.randRange(MinMountains, MaxMountains)
	for i := 0; i < n; i++ {
		b.blob(b.randomPos(), b.randRange(MinMountainRadius, MaxMountainRadius), MountainChance, domain.CellMountain, true)
	}
	return b
}

// blob закрашивает круг вокруг center с вероятностью chance на клетку.
// Случайное число тянется только для клеток внутри радиуса.
func (b *Builder) blob(center domain.Position, radius int, chance float64, kind domain.CellKind, onlyGrass bool) {
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			p := domain.Position{X: x, Y: y}
			if !b.grid.InBounds(p) {
				continue
			}
			if onlyGrass && b.grid.Kind(p) != domain.CellGrass {
				continue
			}
			dist := math.Hypot(float64(x-center.X), float64(y-center.Y))
			if dist <= float64(radius) && b.rng.Float64() < chance {
				_ = b.grid.Set(p, kind)
			}
		}
	}
}

// WithPaths прокладывает тропы жадным шагом: двигаемся по оси с большей
// оставшейся разницей, при равенстве - по Y. Трава превращается в тропу,
// остальное не трогаем.
func (b *Builder) WithPaths() *Builder {
	n := b.randRange(MinPaths, MaxPaths)
	for i := 0; i < n; i++ {
		start := b.randomPos()
		end := b.randomPos()
		b.carvePath(start, end)
		b.summary.Paths++
	}
	return b
}

func (b *Builder) carvePath(start, end domain.Position) {
	cur := start
	for cur != end {
		b.pave(cur)

		dx, dy := end.X-cur.X, end.Y-cur.Y
		if absInt(dx) > absInt(dy) {
			cur.X += domain.Sign(dx)
		} else {
			cur.Y += domain.Sign(dy)
		}

		cur.X = min(max(cur.X, 0), b.width-1)
		cur.Y = min(max(cur.Y, 0), b.height-1)
	}
	b.pave(end)
}

func (b *Builder) pave(p domain.Position) {
	if b.grid.Kind(p) == domain.CellGrass {
		_ = b.grid.Set(p, domain.CellPath)
	}
}

// WithTreasures ставит от MinTreasures до MaxTreasures сокровищ
func (b *Builder) WithTreasures() *Builder {
	requested := b.randRange(MinTreasures, MaxTreasures)
	b.summary.Treasures = PlaceTreasures(b.grid, requested, b.rng)
	return b
}

// WithLandmarks ставит дома и одну пещеру. Ни дом, ни пещера не ложатся
// на сокровище или друг на друга. Дом не ставится, если после него
// на карте не останется проходимых клеток.
func (b *Builder) WithLandmarks() *Builder {
	houses := b.randRange(MinHouses, MaxHouses)
	for i := 0; i < houses; i++ {
		if b.placeLandmark(domain.CellHouse) {
			b.summary.Houses++
		}
	}
	b.summary.Cave = b.placeLandmark(domain.CellCave)
	return b
}

func (b *Builder) placeLandmark(kind domain.CellKind) bool {
	for attempt := 0; attempt < LandmarkAttempts; attempt++ {
		p := b.randomPos()
		cell := b.grid.At(p)
		if !cell.Passable {
			continue
		}
		switch cell.Kind {
		case domain.CellTreasure, domain.CellCave, domain.CellHouse:
			continue
		}
		if !kind.Passable() && b.grid.PassableCount() <= 1 {
			continue
		}
		_ = b.grid.Set(p, kind)
		return true
	}
	return false
}

// Build завершает генерацию. Если вода съела всю карту (крошечные размеры),
// центральная клетка возвращается в траву, чтобы игроку было где стоять.
func (b *Builder) Build() (*domain.Grid, Summary) {
	if b.grid.PassableCount() == 0 {
		_ = b.grid.Set(domain.Position{X: b.width / 2, Y: b.height / 2}, domain.CellGrass)
	}
	b.summary.Passable = b.grid.PassableCount()
	return b.grid, b.summary
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
