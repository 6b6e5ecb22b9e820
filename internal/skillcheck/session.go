package skillcheck

import (
	"math"

	"wisp-server/internal/domain"
)

type Phase uint8

const (
	PhaseRunning Phase = iota
	PhaseSuccess
	PhaseFail
)

var phaseToString = map[Phase]string{
	PhaseRunning: "running",
	PhaseSuccess: "success",
	PhaseFail:    "fail",
}

func (p Phase) String() string {
	if val, ok := phaseToString[p]; ok {
		return val
	}
	return "unknown"
}

type Direction int8

const (
	DirLeft  Direction = -1
	DirRight Direction = 1
)

func (d Direction) String() string {
	if d == DirLeft {
		return "left"
	}
	return "right"
}

// Outcome - итог проверки
type Outcome struct {
	Caught           bool `json:"caught"`
	RewardMultiplier int  `json:"rewardMultiplier"`
}

func outcomeFor(p Phase) Outcome {
	if p == PhaseSuccess {
		return Outcome{Caught: true, RewardMultiplier: 2}
	}
	return Outcome{Caught: false, RewardMultiplier: 1}
}

// Update - состояние сессии после тика или удара
type Update struct {
	Phase     Phase
	Marker    float64
	Direction Direction
	Bounces   int
	Ticks     int
	Struck    bool
	// Outcome заполняется только в финальном отчете Runner
	Outcome *Outcome
}

// Session - чистая машина состояний проверки навыка без времени.
// Часы подает снаружи Runner (по таймеру) или повтор записи (по счетчику).
type Session struct {
	cfg     Config
	rarity  domain.Rarity
	marker  float64
	dir     Direction
	bounces int
	ticks   int
	struck  bool
	phase   Phase
}

// NewSession - маркер справа (100) и движется влево
func NewSession(rarity domain.Rarity, cfg Config) *Session {
	return &Session{
		cfg:    cfg.normalize(),
		rarity: rarity,
		marker: ScaleMax,
		dir:    DirLeft,
		phase:  PhaseRunning,
	}
}

// Advance - один тик часов. Вне фазы running ничего не делает.
func (s *Session) Advance() Update {
	if s.phase != PhaseRunning {
		return s.Snapshot()
	}

	s.ticks++
	next := s.marker + float64(s.dir)

	if next <= ScaleMin || next >= ScaleMax {
		if next <= ScaleMin {
			s.dir = DirRight
		} else {
			s.dir = DirLeft
		}
		s.bounces++
		next = math.Max(ScaleMin, math.Min(ScaleMax, next))

		if s.bounces >= s.cfg.MaxBounces {
			s.phase = PhaseFail
		}
	}
	s.marker = next

	return s.Snapshot()
}

// Strike - игрок нажал кнопку. Возвращает false, если удар пришел поздно.
func (s *Session) Strike() bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.struck = true
	if math.Abs(s.marker-ScaleCenter) <= s.cfg.SuccessThreshold {
		s.phase = PhaseSuccess
	} else {
		s.phase = PhaseFail
	}
	return true
}

// Outcome возвращает итог; ok == false, пока игра идет.
func (s *Session) Outcome() (Outcome, bool) {
	if s.phase == PhaseRunning {
		return Outcome{}, false
	}
	return outcomeFor(s.phase), true
}

func (s *Session) Snapshot() Update {
	return Update{
		Phase:     s.phase,
		Marker:    s.marker,
		Direction: s.dir,
		Bounces:   s.bounces,
		Ticks:     s.ticks,
		Struck:    s.struck,
	}
}

func (s *Session) Phase() Phase          { return s.phase }
func (s *Session) Marker() float64       { return s.marker }
func (s *Session) Ticks() int            { return s.ticks }
func (s *Session) Rarity() domain.Rarity { return s.rarity }

// InZone - маркер сейчас в зоне успеха
func (s *Session) InZone() bool {
	return math.Abs(s.marker-ScaleCenter) <= s.cfg.SuccessThreshold
}

// Replay прогоняет сессию на ticks тиков и, если struck, бьет.
// Нужен для детерминированного воспроизведения записанных партий.
func Replay(rarity domain.Rarity, cfg Config, ticks int, struck bool) Outcome {
	s := NewSession(rarity, cfg)
	for i := 0; i < ticks && s.Phase() == PhaseRunning; i++ {
		s.Advance()
	}
	if struck {
		s.Strike()
	}
	// Запись оборвалась до конца игры - досчитываем до автопровала
	for s.Phase() == PhaseRunning {
		s.Advance()
	}
	out, _ := s.Outcome()
	return out
}
