package systems

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"wisp-server/internal/core/types"
	"wisp-server/internal/core/types/enums"
	"wisp-server/internal/domain"
	"wisp-server/pkg/logger"
)

// TickResult - итог одного игрового тика для огоньков
type TickResult struct {
	// Encounter - огонек рядом с игроком. Если не nil, в этом тике никто не двигался.
	Encounter *domain.WispSnapshot
	Moved     int
}

// WispSimulation единолично владеет списком огоньков. Наружу отдаются
// только копии, результат поимки сообщается через ApplyCaptureOutcome.
// Не потокобезопасна: вызывающий держит свою блокировку.
type WispSimulation struct {
	rng          *rand.Rand
	grid         *domain.Grid
	wisps        []domain.Wisp
	captureOrder []types.EntityID
	active       bool
	generation   uint32
}

func NewWispSimulation(rng *rand.Rand) *WispSimulation {
	return &WispSimulation{rng: rng}
}

// Spawn создает от MinWisps до MaxWisps огоньков на новой карте.
// Каждому дается WispSpawnAttempts попыток найти клетку: в границах,
// проходимую, не под игроком и не занятую другим новым огоньком.
// Огонек без клетки пропускается. Возвращает число созданных.
func (s *WispSimulation) Spawn(grid *domain.Grid, player domain.Position) int {
	s.Reset(grid)

	log := logger.For("wisps")

	want := s.rng.Intn(domain.MaxWisps-domain.MinWisps+1) + domain.MinWisps
	taken := mapset.New[domain.Position]()

	for i := 0; i < want; i++ {
		pos, ok := s.findSpawnCell(player, taken)
		if !ok {
			log.WithField("slot", i).Debug("No spawn cell for wisp")
			continue
		}
		taken.Put(pos)

		rarity := domain.AllRarities[s.rng.Intn(len(domain.AllRarities))]
		speed := rarity.Speed()
		w := domain.Wisp{
			ID:          types.PackEntityID(uint8(enums.EntityKindWisp), s.generation, uint32(i)),
			Name:        fmt.Sprintf("Wisp %d", i+1),
			Rarity:      rarity,
			Speed:       speed,
			Pos:         pos,
			MoveCounter: s.rng.Intn(speed),
			State:       enums.WispStateIdle,
		}
		s.wisps = append(s.wisps, w)

		log.WithFields(logrus.Fields{
			"wisp_id": w.ID,
			"rarity":  rarity,
			"x":       pos.X,
			"y":       pos.Y,
		}).Debug("Wisp spawned")
	}

	return len(s.wisps)
}

// Reset готовит симуляцию к новой карте: список пуст, новое поколение id
func (s *WispSimulation) Reset(grid *domain.Grid) {
	s.grid = grid
	s.wisps = s.wisps[:0]
	s.captureOrder = s.captureOrder[:0]
	s.generation++
	s.active = true
}

// Place ставит огонька вручную (отладочные команды, сценарии тестов)
func (s *WispSimulation) Place(rarity domain.Rarity, pos domain.Position) (domain.WispSnapshot, error) {
	if s.grid == nil {
		return domain.WispSnapshot{}, errors.New("wisp simulation has no map")
	}
	if !s.grid.IsPassable(pos) {
		return domain.WispSnapshot{}, fmt.Errorf("place wisp at (%d,%d): cell is not passable", pos.X, pos.Y)
	}
	for _, w := range s.wisps {
		if w.Pos == pos && !w.Captured {
			return domain.WispSnapshot{}, fmt.Errorf("place wisp at (%d,%d): cell is taken by %s", pos.X, pos.Y, w.Name)
		}
	}

	slot := len(s.wisps)
	w := domain.Wisp{
		ID:     types.PackEntityID(uint8(enums.EntityKindWisp), s.generation, uint32(slot)),
		Name:   fmt.Sprintf("Wisp %d", slot+1),
		Rarity: rarity,
		Speed:  rarity.Speed(),
		Pos:    pos,
		State:  enums.WispStateIdle,
	}
	s.wisps = append(s.wisps, w)
	return w, nil
}

func (s *WispSimulation) findSpawnCell(player domain.Position, taken mapset.Set[domain.Position]) (domain.Position, bool) {
	if s.grid.Width == 0 || s.grid.Height == 0 {
		return domain.Position{}, false
	}
	for attempt := 0; attempt < domain.WispSpawnAttempts; attempt++ {
		p := domain.Position{X: s.rng.Intn(s.grid.Width), Y: s.rng.Intn(s.grid.Height)}
		if !s.grid.IsPassable(p) || p == player || taken.Has(p) {
			continue
		}
		return p, true
	}
	return domain.Position{}, false
}

// Tick - один игровой тик после принятого хода игрока.
//  1. Первый непойманный огонек на расстоянии Чебышева <= 1 - встреча, никто не двигается.
//  2. Иначе каждый непойманный огонек увеличивает счетчик и на каждом speed-м
//     тике пытается уйти от игрока. После попытки счетчик сбрасывается.
func (s *WispSimulation) Tick(player domain.Position) TickResult {
	var res TickResult
	if !s.active || len(s.wisps) == 0 {
		return res
	}

	for i := range s.wisps {
		w := &s.wisps[i]
		if w.Captured {
			continue
		}
		if w.Pos.Chebyshev(player) <= domain.EncounterRange {
			snap := *w
			res.Encounter = &snap
			logger.For("wisps").WithFields(logrus.Fields{
				"wisp_id": w.ID,
				"rarity":  w.Rarity,
			}).Debug("Encounter")
			return res
		}
	}

	for i := range s.wisps {
		w := &s.wisps[i]
		if w.Captured {
			continue
		}

		if (w.MoveCounter+1)%w.Speed != 0 {
			w.MoveCounter++
			w.State = enums.WispStateIdle
			continue
		}

		next, ok := ComputeEvasionStep(w.Pos, player, s.grid)
		if ok {
			w.Pos = next
			w.State = enums.WispStateFleeing
			res.Moved++
		} else {
			w.State = enums.WispStateCornered
		}
		w.MoveCounter = 0
	}

	return res
}

// ApplyCaptureOutcome сообщает результат проверки навыка.
// Повторный вызов для пойманного огонька ничего не меняет.
// Возвращает true, если огонек пойман именно этим вызовом.
func (s *WispSimulation) ApplyCaptureOutcome(id types.EntityID, caught bool) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	w := &s.wisps[idx]
	if w.Captured || !caught {
		return false
	}

	w.Captured = true
	w.State = enums.WispStateCaptured
	s.captureOrder = append(s.captureOrder, id)

	logger.For("wisps").WithField("wisp_id", id).Debug("Wisp captured")
	return true
}

func (s *WispSimulation) indexOf(id types.EntityID) int {
	for i := range s.wisps {
		if s.wisps[i].ID == id {
			return i
		}
	}
	return -1
}

// Find возвращает копию огонька по id
func (s *WispSimulation) Find(id types.EntityID) (domain.WispSnapshot, bool) {
	if idx := s.indexOf(id); idx >= 0 {
		return s.wisps[idx], true
	}
	return domain.WispSnapshot{}, false
}

// Snapshots - копии всех огоньков текущей карты
func (s *WispSimulation) Snapshots() []domain.WispSnapshot {
	out := make([]domain.WispSnapshot, len(s.wisps))
	copy(out, s.wisps)
	return out
}

// Active - непойманные огоньки
func (s *WispSimulation) Active() []domain.WispSnapshot {
	out := make([]domain.WispSnapshot, 0, len(s.wisps))
	for _, w := range s.wisps {
		if !w.Captured {
			out = append(out, w)
		}
	}
	return out
}

// Captured - пойманные огоньки в порядке поимки. Список выводится из флагов,
// отдельно не хранится.
func (s *WispSimulation) Captured() []domain.WispSnapshot {
	out := make([]domain.WispSnapshot, 0, len(s.captureOrder))
	for _, id := range s.captureOrder {
		if idx := s.indexOf(id); idx >= 0 && s.wisps[idx].Captured {
			out = append(out, s.wisps[idx])
		}
	}
	return out
}

// IsActive - идет ли симуляция (после Spawn и до Stop)
func (s *WispSimulation) IsActive() bool {
	return s.active
}

// Stop выключает симуляцию: Tick становится no-op
func (s *WispSimulation) Stop() {
	s.active = false
}

// Generation - номер карты, на которой созданы текущие огоньки
func (s *WispSimulation) Generation() uint32 {
	return s.generation
}
