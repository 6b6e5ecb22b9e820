package terrain

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"wisp-server/internal/domain"
	"wisp-server/pkg/logger"
)

// Параметры генерации. Диапазоны включительные.
const (
	MinWaterBodies = 1
	MaxWaterBodies = 2
	MinWaterRadius = 2
	MaxWaterRadius = 4
	WaterChance    = 0.6

	MinForests      = 1
	MaxForests      = 3
	MinForestRadius = 2
	MaxForestRadius = 4
	ForestChance    = 0.5

	MinMountains      = 1
	MaxMountains      = 2
	MinMountainRadius = 1
	MaxMountainRadius = 2
	MountainChance    = 0.65

	MinPaths = 1
	MaxPaths = 3

	MinTreasures = 3
	MaxTreasures = 7
	// На каждое запрошенное сокровище - столько случайных попыток
	TreasureAttemptsPerItem = 5

	MinHouses = 1
	MaxHouses = 3
	// Сколько клеток пробуем для одного дома или пещеры
	LandmarkAttempts = 10
)

// Summary - что реально получилось при генерации
type Summary struct {
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Treasures int  `json:"treasures"`
	Houses    int  `json:"houses"`
	Cave      bool `json:"cave"`
	Paths     int  `json:"paths"`
	Passable  int  `json:"passable"`
}

// Generate строит новую карту. Результат полностью определяется rng.
// Возвращает карту и число сокровищ, которое совпадает с числом клеток treasure.
func Generate(width, height int, rng *rand.Rand) (*domain.Grid, int) {
	grid, summary := NewBuilder(width, height, rng).
		WithWater().
		WithForests().
		WithMountains().
		WithPaths().
		WithTreasures().
		WithLandmarks().
		Build()

	logger.For("terrain").WithFields(logrus.Fields{
		"width":     summary.Width,
		"height":    summary.Height,
		"treasures": summary.Treasures,
		"houses":    summary.Houses,
		"cave":      summary.Cave,
		"paths":     summary.Paths,
		"passable":  summary.Passable,
	}).Debug("Map generated")

	return grid, summary.Treasures
}

// PlaceTreasures ставит до requested сокровищ на проходимые клетки методом
// отбраковки. Бюджет попыток - requested*TreasureAttemptsPerItem.
// Возвращает, сколько сокровищ реально поставлено.
func PlaceTreasures(grid *domain.Grid, requested int, rng *rand.Rand) int {
	if requested <= 0 || grid.Width == 0 || grid.Height == 0 {
		return 0
	}

	placed := 0
	budget := requested * TreasureAttemptsPerItem
	for attempt := 0; placed < requested && attempt < budget; attempt++ {
		p := domain.Position{X: rng.Intn(grid.Width), Y: rng.Intn(grid.Height)}
		cell := grid.At(p)
		if !cell.Passable || cell.Kind == domain.CellTreasure {
			continue
		}
		_ = grid.Set(p, domain.CellTreasure)
		placed++
	}
	return placed
}

// FindStartPosition ищет клетку для игрока: сначала от центра карты
// к правому нижнему углу, потом по всей карте.
func FindStartPosition(grid *domain.Grid) (domain.Position, error) {
	for y := grid.Height / 2; y < grid.Height; y++ {
		for x := grid.Width / 2; x < grid.Width; x++ {
			if p := (domain.Position{X: x, Y: y}); grid.IsPassable(p) {
				return p, nil
			}
		}
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if p := (domain.Position{X: x, Y: y}); grid.IsPassable(p) {
				return p, nil
			}
		}
	}

	return domain.Position{}, domain.ErrNoStartCell
}
