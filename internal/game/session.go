package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"wisp-server/internal/domain"
	"wisp-server/internal/skillcheck"
	"wisp-server/internal/systems"
	"wisp-server/pkg/logger"
	"wisp-server/pkg/terrain"
)

// Stats - счет и прогресс сессии
type Stats struct {
	Score              int    `json:"score"`
	Multiplier         int    `json:"multiplier"`
	TreasuresTotal     int    `json:"treasuresTotal"`
	TreasuresCollected int    `json:"treasuresCollected"`
	WispsCaptured      int    `json:"wispsCaptured"` // Накопительно по всем картам
	MapsPlayed         int    `json:"mapsPlayed"`
	Tick               int    `json:"tick"`
	Won                bool   `json:"won"`
	Language           string `json:"language"`
}

// View - согласованный снимок сессии для отрисовки
type View struct {
	Grid      *domain.Grid
	Player    domain.Position
	Wisps     []domain.WispSnapshot
	Captured  []domain.WispSnapshot
	Quiz      *Quiz
	Encounter *domain.WispSnapshot
	Stats     Stats
}

// CaptureResult - чем закончилась встреча с огоньком
type CaptureResult struct {
	Wisp       domain.WispSnapshot `json:"wisp"`
	Caught     bool                `json:"caught"`
	Multiplier int                 `json:"multiplier"`
	Message    string              `json:"message"`
}

// MoveResult - итог принятого (или отклоненного) хода
type MoveResult struct {
	Moved     bool
	Position  domain.Position
	Cell      domain.CellKind
	Message   string
	Collected bool
	Quiz      *Quiz
	// Encounter - встреча ждет проверки навыка (UseSkillCheck)
	Encounter *domain.WispSnapshot
	// Capture - встреча решена сразу броском (без проверки навыка)
	Capture *CaptureResult
}

// AnswerResult - итог ответа на квиз
type AnswerResult struct {
	Correct   bool
	Word      Word
	Collected bool
	Message   string
}

// GameSession - контроллер одной партии: карта, игрок, огоньки, квиз и счет.
// Все публичные методы берут блокировку, поэтому тик огоньков и сбор
// сокровища происходят атомарно.
type GameSession struct {
	mu sync.Mutex

	cfg   Config
	rng   *rand.Rand
	words []Word
	log   *logrus.Entry

	grid      *domain.Grid
	player    domain.Position
	wisps     *systems.WispSimulation
	quiz      *Quiz
	encounter *domain.WispSnapshot

	treasuresTotal     int
	treasuresCollected int
	score              int
	multiplier         int
	wispsCaptured      int
	mapsPlayed         int
	tick               int
	won                bool

	messages []domain.Message
}

// NewGameSession создает сессию и первую карту. provider может быть nil:
// тогда сокровища собираются без квиза.
func NewGameSession(cfg Config, provider WordProvider) (*GameSession, error) {
	cfg = cfg.normalize()
	rng := rand.New(rand.NewSource(cfg.Seed))

	s := &GameSession{
		cfg:        cfg,
		rng:        rng,
		wisps:      systems.NewWispSimulation(rng),
		multiplier: 1,
		log:        logger.For("game").WithField("seed", cfg.Seed),
	}

	if provider != nil {
		words, err := provider.Words(cfg.Language)
		if err != nil {
			s.log.WithError(err).Warn("Word provider failed, using built-in words")
			words = FallbackWords(cfg.Language)
		}
		s.words = words
	}

	if err := s.NewMap(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMap генерирует новую карту и огоньков. Если на карте негде встать,
// карта пересоздается до MaxRegenerations раз.
func (s *GameSession) NewMap() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < s.cfg.MaxRegenerations; attempt++ {
		grid, treasures := terrain.Generate(s.cfg.Width, s.cfg.Height, s.rng)
		start, err := terrain.FindStartPosition(grid)
		if errors.Is(err, domain.ErrNoStartCell) {
			s.log.WithField("attempt", attempt+1).Warn("No start cell, regenerating map")
			continue
		}

		s.installMap(grid, treasures, start)
		spawned := s.wisps.Spawn(grid, start)

		s.log.WithFields(logrus.Fields{
			"map":       s.mapsPlayed,
			"treasures": treasures,
			"wisps":     spawned,
		}).Info("New map ready")
		s.addMessage(domain.MsgInfo, "Use arrow keys or WASD to move. Find %d treasures!", treasures)
		return nil
	}

	return fmt.Errorf("generate map after %d attempts: %w", s.cfg.MaxRegenerations, domain.ErrNoStartCell)
}

func (s *GameSession) installMap(grid *domain.Grid, treasures int, start domain.Position) {
	s.grid = grid
	s.player = start
	s.treasuresTotal = treasures
	s.treasuresCollected = 0
	s.quiz = nil
	s.encounter = nil
	s.won = false
	s.mapsPlayed++
}

// Move - ход игрока на одну клетку. Принятый ход - это игровой тик:
// сначала обрабатывается клетка, потом тикают огоньки.
func (s *GameSession) Move(dir domain.Direction) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encounter != nil {
		return MoveResult{Position: s.player}, ErrEncounterActive
	}
	if s.quiz != nil {
		return MoveResult{Position: s.player}, ErrQuizPending
	}

	dx, dy := dir.Delta()
	if dx == 0 && dy == 0 {
		return MoveResult{Position: s.player}, ErrBadDirection
	}

	mv := systems.CalculateMove(s.player, dx, dy, s.grid)
	if !mv.HasMoved {
		if mv.OutOfBounds {
			return MoveResult{Position: s.player}, fmt.Errorf("%w: edge of the map", ErrBlocked)
		}
		return MoveResult{Position: s.player, Cell: mv.BlockedBy}, fmt.Errorf("%w: that's %s %s", ErrBlocked, article(mv.BlockedBy), mv.BlockedBy)
	}

	s.player = mv.Target
	s.tick++

	res := MoveResult{Moved: true, Position: s.player, Cell: s.grid.Kind(s.player)}

	switch res.Cell {
	case domain.CellTreasure:
		if len(s.words) > 0 {
			s.quiz = NewQuiz(s.words, s.player, s.rng)
			res.Quiz = s.quiz.clone()
			res.Message = fmt.Sprintf("You found a treasure! Translate %q to English.", s.quiz.Word.TargetWord)
		} else {
			res.Collected = s.collectTreasure(s.player)
			res.Message = "You found a treasure! (Language data not available)"
		}
	case domain.CellCave:
		res.Message = "You entered a mysterious cave..."
	case domain.CellPath:
		res.Message = "You are on a path. Where does it lead?"
	default:
		res.Message = "Moving through the terrain..."
	}
	s.addMessage(domain.MsgInfo, "%s", res.Message)

	tick := s.wisps.Tick(s.player)
	if tick.Encounter != nil {
		s.startEncounter(*tick.Encounter, &res)
	}

	return res, nil
}

func (s *GameSession) startEncounter(w domain.WispSnapshot, res *MoveResult) {
	if s.cfg.UseSkillCheck {
		enc := w
		s.encounter = &enc
		res.Encounter = &w
		s.addMessage(domain.MsgWarning, "A %s %s appears! Strike when the marker is in the zone.", w.Rarity, w.Name)
		return
	}

	caught := s.rng.Float64() < w.Rarity.CaptureProbability()
	out := skillcheck.Outcome{Caught: caught, RewardMultiplier: 1}
	capture := s.applyCapture(w, out)
	res.Capture = &capture
}

// Answer - ответ на открытый квиз. Верный ответ собирает сокровище,
// неверный закрывает квиз и оставляет сокровище на месте.
func (s *GameSession) Answer(answer string) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quiz == nil {
		return AnswerResult{}, ErrNoQuiz
	}
	q := s.quiz
	s.quiz = nil

	res := AnswerResult{Word: q.Word}
	if q.Check(answer) {
		res.Correct = true
		res.Collected = s.collectTreasure(q.Treasure)
		res.Message = fmt.Sprintf("Correct! %q means %q.", q.Word.TargetWord, q.Word.English)
		s.addMessage(domain.MsgSuccess, "%s", res.Message)
	} else {
		res.Message = fmt.Sprintf("Incorrect. The correct translation of %q is %q.", q.Word.TargetWord, q.Word.English)
		s.addMessage(domain.MsgWarning, "%s", res.Message)
	}
	return res, nil
}

// ResolveEncounter применяет итог проверки навыка к ожидающей встрече
func (s *GameSession) ResolveEncounter(out skillcheck.Outcome) (CaptureResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encounter == nil {
		return CaptureResult{}, ErrNoEncounter
	}
	w := *s.encounter
	s.encounter = nil
	return s.applyCapture(w, out), nil
}

func (s *GameSession) applyCapture(w domain.WispSnapshot, out skillcheck.Outcome) CaptureResult {
	res := CaptureResult{Wisp: w, Caught: out.Caught}

	if s.wisps.ApplyCaptureOutcome(w.ID, out.Caught) {
		s.wispsCaptured++
		res.Wisp.Captured = true
	}
	if out.RewardMultiplier > 0 {
		s.multiplier = out.RewardMultiplier
	}
	res.Multiplier = s.multiplier

	if out.Caught {
		res.Message = fmt.Sprintf("You captured a %s %s!", w.Rarity, w.Name)
		if s.multiplier > 1 {
			res.Message += fmt.Sprintf(" Next treasure is worth x%d.", s.multiplier)
		}
		s.addMessage(domain.MsgSuccess, "%s", res.Message)
	} else {
		res.Message = fmt.Sprintf("The %s %s escaped!", w.Rarity, w.Name)
		s.addMessage(domain.MsgWarning, "%s", res.Message)
	}

	s.log.WithFields(logrus.Fields{
		"wisp_id": w.ID,
		"rarity":  w.Rarity,
		"caught":  out.Caught,
	}).Info("Encounter resolved")
	return res
}

// collectTreasure - единственная мутация карты: treasure -> path
func (s *GameSession) collectTreasure(p domain.Position) bool {
	if !s.grid.CollectTreasure(p) {
		return false
	}
	s.treasuresCollected++
	s.score += domain.TreasureScore * s.multiplier
	s.multiplier = 1

	if s.treasuresTotal > 0 && s.treasuresCollected >= s.treasuresTotal && !s.won {
		s.won = true
		s.addMessage(domain.MsgSuccess, "All %d treasures found! Final score: %d", s.treasuresTotal, s.score)
		s.log.WithField("score", s.score).Info("Map cleared")
	}
	return true
}

func (s *GameSession) addMessage(kind, format string, args ...interface{}) {
	s.messages = append(s.messages, domain.Message{
		Tick: s.tick,
		Text: fmt.Sprintf(format, args...),
		Type: kind,
	})
	if over := len(s.messages) - s.cfg.MaxMessages; over > 0 {
		s.messages = s.messages[over:]
	}
}

// DrainMessages отдает накопленные сообщения и очищает буфер
func (s *GameSession) DrainMessages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.messages
	s.messages = nil
	return out
}

// Snapshot - копия состояния для отрисовки
func (s *GameSession) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Grid:     s.grid.Clone(),
		Player:   s.player,
		Wisps:    s.wisps.Snapshots(),
		Captured: s.wisps.Captured(),
		Stats:    s.statsLocked(),
	}
	if s.quiz != nil {
		v.Quiz = s.quiz.clone()
	}
	if s.encounter != nil {
		enc := *s.encounter
		v.Encounter = &enc
	}
	return v
}

func (s *GameSession) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

func (s *GameSession) statsLocked() Stats {
	return Stats{
		Score:              s.score,
		Multiplier:         s.multiplier,
		TreasuresTotal:     s.treasuresTotal,
		TreasuresCollected: s.treasuresCollected,
		WispsCaptured:      s.wispsCaptured,
		MapsPlayed:         s.mapsPlayed,
		Tick:               s.tick,
		Won:                s.won,
		Language:           s.cfg.Language,
	}
}

// PendingEncounter - огонек, ожидающий проверки навыка
func (s *GameSession) PendingEncounter() (domain.WispSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.encounter == nil {
		return domain.WispSnapshot{}, false
	}
	return *s.encounter, true
}

// OpenQuiz - открытый квиз (копия) или nil
func (s *GameSession) OpenQuiz() *Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiz == nil {
		return nil
	}
	return s.quiz.clone()
}

func (s *GameSession) Player() domain.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

func (s *GameSession) Config() Config {
	return s.cfg
}

// Words - словарь сессии (копия)
func (s *GameSession) Words() []Word {
	return append([]Word(nil), s.words...)
}

// Teleport переносит игрока на проходимую клетку без игрового тика (отладка)
func (s *GameSession) Teleport(p domain.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encounter != nil {
		return ErrEncounterActive
	}
	if !s.grid.IsPassable(p) {
		return fmt.Errorf("%w: (%d,%d) is %s", ErrBlocked, p.X, p.Y, s.grid.Kind(p))
	}
	s.player = p
	s.quiz = nil
	s.addMessage(domain.MsgInfo, "Teleported to (%d,%d)", p.X, p.Y)
	return nil
}

// PlaceWisp ставит огонька на карту (отладка)
func (s *GameSession) PlaceWisp(rarity domain.Rarity, p domain.Position) (domain.WispSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p == s.player {
		return domain.WispSnapshot{}, fmt.Errorf("%w: player stands at (%d,%d)", ErrBlocked, p.X, p.Y)
	}
	w, err := s.wisps.Place(rarity, p)
	if err != nil {
		return domain.WispSnapshot{}, err
	}
	s.addMessage(domain.MsgInfo, "A %s %s drifts in.", w.Rarity, w.Name)
	return w, nil
}

func article(k domain.CellKind) string {
	switch k.String()[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}
