package terrain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp-server/internal/domain"
)

func TestGenerate_Invariants(t *testing.T) {
	sizes := []struct {
		name          string
		width, height int
	}{
		{"default", domain.DefaultMapWidth, domain.DefaultMapHeight},
		{"tiny", 3, 3},
		{"single cell", 1, 1},
		{"strip", 30, 2},
	}

	for _, sz := range sizes {
		t.Run(sz.name, func(t *testing.T) {
			for seed := int64(0); seed < 200; seed++ {
				grid, treasures := Generate(sz.width, sz.height, rand.New(rand.NewSource(seed)))

				require.Equal(t, sz.width*sz.height, len(grid.Cells), "seed %d", seed)
				assert.Equal(t, grid.Count(domain.CellTreasure), treasures, "seed %d: treasure count", seed)
				assert.LessOrEqual(t, treasures, MaxTreasures)
				assert.Positive(t, grid.PassableCount(), "seed %d: no passable cell", seed)
				assert.LessOrEqual(t, grid.Count(domain.CellCave), 1, "seed %d", seed)
				assert.LessOrEqual(t, grid.Count(domain.CellHouse), MaxHouses, "seed %d", seed)

				for _, c := range grid.Cells {
					assert.Equal(t, c.Kind.Passable(), c.Passable)
				}
			}
		})
	}
}

func TestGenerate_DefaultSizeUsuallyPlacesEverything(t *testing.T) {
	// На 20x15 трава доминирует, так что минимум сокровищ почти всегда набирается
	full := 0
	for seed := int64(0); seed < 100; seed++ {
		_, treasures := Generate(20, 15, rand.New(rand.NewSource(seed)))
		if treasures >= MinTreasures {
			full++
		}
	}
	assert.Greater(t, full, 90)
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, seed := range []int64{1, 42, 1337} {
		a, ta := Generate(20, 15, rand.New(rand.NewSource(seed)))
		b, tb := Generate(20, 15, rand.New(rand.NewSource(seed)))

		assert.Equal(t, ta, tb)
		assert.Equal(t, a.Cells, b.Cells, "seed %d produced different maps", seed)
	}

	a, _ := Generate(20, 15, rand.New(rand.NewSource(1)))
	b, _ := Generate(20, 15, rand.New(rand.NewSource(2)))
	assert.NotEqual(t, a.String(), b.String())
}

func TestPlaceTreasures_Exhaustion(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	t.Run("single passable cell", func(t *testing.T) {
		grid := domain.NewGrid(3, 3, domain.CellWater)
		require.NoError(t, grid.Set(domain.Position{X: 1, Y: 1}, domain.CellGrass))

		placed := PlaceTreasures(grid, 5, rng)
		assert.LessOrEqual(t, placed, 1)
		assert.Equal(t, grid.Count(domain.CellTreasure), placed)
	})

	t.Run("no passable cell", func(t *testing.T) {
		grid := domain.NewGrid(3, 3, domain.CellMountain)
		assert.Equal(t, 0, PlaceTreasures(grid, 7, rng))
		assert.Equal(t, 0, grid.Count(domain.CellTreasure))
	})

	t.Run("never doubles up", func(t *testing.T) {
		grid := domain.NewGrid(3, 3, domain.CellGrass)
		placed := PlaceTreasures(grid, 20, rng)
		assert.LessOrEqual(t, placed, 9)
		assert.Equal(t, grid.Count(domain.CellTreasure), placed)
	})

	t.Run("zero requested", func(t *testing.T) {
		grid := domain.NewGrid(3, 3, domain.CellGrass)
		assert.Equal(t, 0, PlaceTreasures(grid, 0, rng))
	})
}

func TestCarvePath(t *testing.T) {
	b := NewBuilder(5, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, b.grid.Set(domain.Position{X: 4, Y: 2}, domain.CellWater))

	b.carvePath(domain.Position{X: 0, Y: 0}, domain.Position{X: 3, Y: 1})

	// Ничья по осям (2,0)->(3,1) двигает по Y
	want := []domain.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}}
	for _, p := range want {
		assert.Equal(t, domain.CellPath, b.grid.Kind(p), "cell %+v", p)
	}
	assert.Equal(t, len(want), b.grid.Count(domain.CellPath))

	t.Run("only grass becomes path", func(t *testing.T) {
		b.carvePath(domain.Position{X: 4, Y: 0}, domain.Position{X: 4, Y: 2})
		assert.Equal(t, domain.CellWater, b.grid.Kind(domain.Position{X: 4, Y: 2}))
		assert.Equal(t, domain.CellPath, b.grid.Kind(domain.Position{X: 4, Y: 1}))
	})
}

func TestPlaceLandmark_KeepsOnePassableCell(t *testing.T) {
	b := NewBuilder(1, 1, rand.New(rand.NewSource(3)))

	assert.False(t, b.placeLandmark(domain.CellHouse))
	assert.Equal(t, 1, b.grid.PassableCount())

	// Пещера проходима, ее ставить можно
	assert.True(t, b.placeLandmark(domain.CellCave))
	assert.Equal(t, domain.CellCave, b.grid.Kind(domain.Position{}))
}

func TestPlaceLandmark_NeverOnTreasure(t *testing.T) {
	b := NewBuilder(2, 2, rand.New(rand.NewSource(5)))
	for _, c := range []domain.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}} {
		require.NoError(t, b.grid.Set(c, domain.CellTreasure))
	}

	assert.False(t, b.placeLandmark(domain.CellHouse))
	assert.False(t, b.placeLandmark(domain.CellCave))
	assert.Equal(t, 4, b.grid.Count(domain.CellTreasure))
}

func TestFindStartPosition(t *testing.T) {
	t.Run("center first", func(t *testing.T) {
		grid := domain.NewGrid(5, 5, domain.CellGrass)
		p, err := FindStartPosition(grid)
		require.NoError(t, err)
		assert.Equal(t, domain.Position{X: 2, Y: 2}, p)
	})

	t.Run("scans right of center", func(t *testing.T) {
		grid := domain.NewGrid(5, 5, domain.CellGrass)
		require.NoError(t, grid.Set(domain.Position{X: 2, Y: 2}, domain.CellTree))
		p, err := FindStartPosition(grid)
		require.NoError(t, err)
		assert.Equal(t, domain.Position{X: 3, Y: 2}, p)
	})

	t.Run("falls back to full scan", func(t *testing.T) {
		grid := domain.NewGrid(4, 4, domain.CellWater)
		require.NoError(t, grid.Set(domain.Position{X: 1, Y: 0}, domain.CellPath))
		p, err := FindStartPosition(grid)
		require.NoError(t, err)
		assert.Equal(t, domain.Position{X: 1, Y: 0}, p)
	})

	t.Run("no passable cell", func(t *testing.T) {
		grid := domain.NewGrid(3, 3, domain.CellWater)
		_, err := FindStartPosition(grid)
		assert.ErrorIs(t, err, domain.ErrNoStartCell)
	})
}
