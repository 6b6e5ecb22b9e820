package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp-server/internal/core/types"
	"wisp-server/internal/core/types/enums"
	"wisp-server/internal/domain"
	"wisp-server/pkg/terrain"
)

// newTestSimulation собирает симуляцию с заранее расставленными огоньками
func newTestSimulation(grid *domain.Grid, wisps ...domain.Wisp) *WispSimulation {
	s := NewWispSimulation(rand.New(rand.NewSource(1)))
	s.grid = grid
	s.active = true
	for i, w := range wisps {
		if w.ID.IsNil() {
			w.ID = types.PackEntityID(uint8(enums.EntityKindWisp), 1, uint32(i))
		}
		if w.Speed == 0 {
			w.Speed = w.Rarity.Speed()
		}
		s.wisps = append(s.wisps, w)
	}
	return s
}

func TestSpawn_Invariants(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		grid, _ := terrain.Generate(20, 15, rng)
		player, err := terrain.FindStartPosition(grid)
		require.NoError(t, err)

		s := NewWispSimulation(rng)
		n := s.Spawn(grid, player)
		require.LessOrEqual(t, n, domain.MaxWisps)
		require.True(t, s.IsActive())

		seen := map[domain.Position]bool{}
		for _, w := range s.Snapshots() {
			assert.True(t, grid.IsPassable(w.Pos), "seed %d: wisp on impassable cell", seed)
			assert.NotEqual(t, player, w.Pos, "seed %d: wisp on player", seed)
			assert.False(t, seen[w.Pos], "seed %d: two wisps share a cell", seed)
			seen[w.Pos] = true

			assert.Equal(t, w.Rarity.Speed(), w.Speed)
			assert.GreaterOrEqual(t, w.MoveCounter, 0)
			assert.Less(t, w.MoveCounter, w.Speed)
			assert.False(t, w.Captured)
			assert.Equal(t, uint8(enums.EntityKindWisp), w.ID.Kind())
			assert.Equal(t, s.Generation(), w.ID.Generation())
		}
	}
}

func TestSpawn_OpenField(t *testing.T) {
	grid := domain.NewGrid(10, 10, domain.CellGrass)
	s := NewWispSimulation(rand.New(rand.NewSource(3)))

	n := s.Spawn(grid, domain.Position{X: 5, Y: 5})
	assert.GreaterOrEqual(t, n, domain.MinWisps)
	assert.Len(t, s.Active(), n)
	for i, w := range s.Snapshots() {
		assert.Equal(t, uint32(i), w.ID.Index())
	}
}

func TestSpawn_NoRoom(t *testing.T) {
	// Единственная проходимая клетка - под игроком
	grid := domain.NewGrid(4, 4, domain.CellWater)
	player := domain.Position{X: 1, Y: 1}
	require.NoError(t, grid.Set(player, domain.CellGrass))

	s := NewWispSimulation(rand.New(rand.NewSource(5)))
	assert.Equal(t, 0, s.Spawn(grid, player))
	assert.Empty(t, s.Snapshots())

	res := s.Tick(player)
	assert.Nil(t, res.Encounter)
}

func TestSpawn_NewGenerationOnRespawn(t *testing.T) {
	grid := domain.NewGrid(8, 8, domain.CellGrass)
	s := NewWispSimulation(rand.New(rand.NewSource(11)))
	s.Spawn(grid, domain.Position{})
	first := s.Snapshots()
	s.Spawn(grid, domain.Position{})

	for _, w := range first {
		_, ok := s.Find(w.ID)
		assert.False(t, ok, "id from previous map must not resolve")
	}
}

func TestTick_Inactive(t *testing.T) {
	s := NewWispSimulation(rand.New(rand.NewSource(1)))
	res := s.Tick(domain.Position{})
	assert.Nil(t, res.Encounter)
	assert.Zero(t, res.Moved)

	grid := domain.NewGrid(5, 5, domain.CellGrass)
	s = newTestSimulation(grid, domain.Wisp{Rarity: domain.RarityRare, Pos: domain.Position{X: 1, Y: 1}})
	s.Stop()
	res = s.Tick(domain.Position{X: 1, Y: 2})
	assert.Nil(t, res.Encounter)
}

func TestTick_EncounterPriority(t *testing.T) {
	grid := domain.NewGrid(10, 10, domain.CellGrass)
	player := domain.Position{X: 5, Y: 5}

	far := domain.Wisp{Rarity: domain.RarityRare, Pos: domain.Position{X: 0, Y: 0}}
	near := domain.Wisp{Rarity: domain.RarityCommon, Pos: domain.Position{X: 6, Y: 6}}
	s := newTestSimulation(grid, far, near)

	res := s.Tick(player)
	require.NotNil(t, res.Encounter)
	assert.Equal(t, s.wisps[1].ID, res.Encounter.ID)
	assert.Zero(t, res.Moved)

	// Быстрый огонек в этом тике не сдвинулся и счетчик не изменился
	assert.Equal(t, domain.Position{X: 0, Y: 0}, s.wisps[0].Pos)
	assert.Equal(t, 0, s.wisps[0].MoveCounter)
}

func TestTick_FirstNonCapturedWins(t *testing.T) {
	grid := domain.NewGrid(10, 10, domain.CellGrass)
	player := domain.Position{X: 5, Y: 5}

	a := domain.Wisp{Rarity: domain.RarityCommon, Pos: domain.Position{X: 5, Y: 4}, Captured: true}
	b := domain.Wisp{Rarity: domain.RarityCommon, Pos: domain.Position{X: 4, Y: 5}}
	c := domain.Wisp{Rarity: domain.RarityCommon, Pos: domain.Position{X: 6, Y: 5}}
	s := newTestSimulation(grid, a, b, c)

	res := s.Tick(player)
	require.NotNil(t, res.Encounter)
	assert.Equal(t, s.wisps[1].ID, res.Encounter.ID)
}

func TestTick_EncounterIsSnapshot(t *testing.T) {
	grid := domain.NewGrid(5, 5, domain.CellGrass)
	s := newTestSimulation(grid, domain.Wisp{Rarity: domain.RarityCommon, Pos: domain.Position{X: 2, Y: 3}})

	res := s.Tick(domain.Position{X: 2, Y: 2})
	require.NotNil(t, res.Encounter)
	res.Encounter.Captured = true
	res.Encounter.Pos = domain.Position{}

	w, ok := s.Find(res.Encounter.ID)
	require.True(t, ok)
	assert.False(t, w.Captured)
	assert.Equal(t, domain.Position{X: 2, Y: 3}, w.Pos)
}

func TestTick_MovementCadence(t *testing.T) {
	grid := domain.NewGrid(20, 3, domain.CellGrass)
	player := domain.Position{X: 0, Y: 1}

	tests := []struct {
		name   string
		rarity domain.Rarity
		// Номера тиков (с 1), на которых огонек должен сдвинуться
		moves []int
	}{
		{"common every third tick", domain.RarityCommon, []int{3, 6}},
		{"uncommon every second tick", domain.RarityUncommon, []int{2, 4, 6}},
		{"rare every tick", domain.RarityRare, []int{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSimulation(grid, domain.Wisp{Rarity: tt.rarity, Pos: domain.Position{X: 5, Y: 1}})

			var got []int
			for tick := 1; tick <= 6; tick++ {
				before := s.wisps[0].Pos
				res := s.Tick(player)
				require.Nil(t, res.Encounter)
				if s.wisps[0].Pos != before {
					got = append(got, tick)
					assert.Equal(t, before.X+1, s.wisps[0].Pos.X, "must flee away from player")
					assert.Equal(t, 0, s.wisps[0].MoveCounter)
					assert.Equal(t, enums.WispStateFleeing, s.wisps[0].State)
				}
			}
			assert.Equal(t, tt.moves, got)
		})
	}
}

func TestTick_CorneredResetsCounter(t *testing.T) {
	grid := domain.NewGrid(5, 5, domain.CellGrass)
	s := newTestSimulation(grid, domain.Wisp{Rarity: domain.RarityUncommon, Pos: domain.Position{}, MoveCounter: 1})

	res := s.Tick(domain.Position{X: 3, Y: 3})
	assert.Zero(t, res.Moved)
	assert.Equal(t, domain.Position{}, s.wisps[0].Pos)
	assert.Equal(t, 0, s.wisps[0].MoveCounter)
	assert.Equal(t, enums.WispStateCornered, s.wisps[0].State)
}

func TestTick_CapturedWispsStayPut(t *testing.T) {
	grid := domain.NewGrid(5, 5, domain.CellGrass)
	s := newTestSimulation(grid, domain.Wisp{Rarity: domain.RarityRare, Pos: domain.Position{X: 2, Y: 2}, Captured: true})

	for i := 0; i < 3; i++ {
		res := s.Tick(domain.Position{X: 2, Y: 3})
		assert.Nil(t, res.Encounter)
		assert.Zero(t, res.Moved)
	}
	assert.Equal(t, domain.Position{X: 2, Y: 2}, s.wisps[0].Pos)
}

func TestApplyCaptureOutcome(t *testing.T) {
	grid := domain.NewGrid(5, 5, domain.CellGrass)
	s := newTestSimulation(grid,
		domain.Wisp{Rarity: domain.RarityCommon, Pos: domain.Position{X: 0, Y: 0}},
		domain.Wisp{Rarity: domain.RarityRare, Pos: domain.Position{X: 4, Y: 4}},
	)
	first, second := s.wisps[0].ID, s.wisps[1].ID

	t.Run("fail keeps wisp free", func(t *testing.T) {
		assert.False(t, s.ApplyCaptureOutcome(first, false))
		assert.Empty(t, s.Captured())
	})

	t.Run("capture is idempotent", func(t *testing.T) {
		assert.True(t, s.ApplyCaptureOutcome(second, true))
		assert.False(t, s.ApplyCaptureOutcome(second, true))
		assert.False(t, s.ApplyCaptureOutcome(second, false))

		captured := s.Captured()
		require.Len(t, captured, 1)
		assert.Equal(t, second, captured[0].ID)
		assert.True(t, captured[0].Captured)
	})

	t.Run("capture order is kept", func(t *testing.T) {
		assert.True(t, s.ApplyCaptureOutcome(first, true))
		captured := s.Captured()
		require.Len(t, captured, 2)
		assert.Equal(t, second, captured[0].ID)
		assert.Equal(t, first, captured[1].ID)
		assert.Empty(t, s.Active())
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.False(t, s.ApplyCaptureOutcome(types.PackEntityID(2, 99, 0), true))
	})
}

func TestPlace(t *testing.T) {
	grid, err := domain.ParseGrid(
		"..~",
		"...",
	)
	require.NoError(t, err)

	s := NewWispSimulation(rand.New(rand.NewSource(1)))
	_, err = s.Place(domain.RarityRare, domain.Position{})
	assert.Error(t, err, "no map yet")

	s.Reset(grid)
	w, err := s.Place(domain.RarityRare, domain.Position{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, w.Speed)
	assert.Equal(t, "Wisp 1", w.Name)

	_, err = s.Place(domain.RarityCommon, domain.Position{X: 1, Y: 1})
	assert.Error(t, err, "cell taken")
	_, err = s.Place(domain.RarityCommon, domain.Position{X: 2, Y: 0})
	assert.Error(t, err, "water")

	res := s.Tick(domain.Position{X: 0, Y: 0})
	require.NotNil(t, res.Encounter)
	assert.Equal(t, w.ID, res.Encounter.ID)
}
