package engine

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"wisp-server/internal/domain"
	"wisp-server/internal/engine/handlers"
	"wisp-server/internal/engine/handlers/actions"
	"wisp-server/internal/engine/handlers/admin"
	"wisp-server/internal/game"
	"wisp-server/internal/infrastructure/storage"
	"wisp-server/internal/network"
	"wisp-server/pkg/api"
	"wisp-server/pkg/command"
	"wisp-server/pkg/logger"
)

// GameService держит партии всех подключенных клиентов.
// Одна сессия на соединение, ключ - ID сессии.
type GameService struct {
	cfg      Config
	provider game.WordProvider

	Hub     *network.Broadcaster
	replays *storage.ReplayService

	mu        sync.RWMutex
	instances map[string]*Instance
	created   int64

	handlers map[domain.ActionType]handlers.HandlerFunc
	log      *logrus.Entry
}

// SessionInfo - краткая сводка для /debug/sessions
type SessionInfo struct {
	ID         string     `json:"id"`
	Seed       int64      `json:"seed"`
	Stats      game.Stats `json:"stats"`
	SkillCheck bool       `json:"skillCheck"`
	Actions    int        `json:"actions"`
}

func NewService(cfg Config, provider game.WordProvider) (*GameService, error) {
	s := &GameService{
		cfg:       cfg,
		provider:  provider,
		Hub:       network.NewBroadcaster(),
		instances: make(map[string]*Instance),
		handlers:  newHandlerRegistry(),
		log:       logger.For("engine"),
	}

	if cfg.ReplayDir != "" {
		replays, err := storage.NewReplayService(cfg.ReplayDir)
		if err != nil {
			return nil, err
		}
		s.replays = replays
	}
	return s, nil
}

// newHandlerRegistry - хендлеры действий. Общий для живой игры и повтора.
func newHandlerRegistry() map[domain.ActionType]handlers.HandlerFunc {
	return map[domain.ActionType]handlers.HandlerFunc{
		domain.ActionInit:   handlers.WithEmptyPayload(actions.HandleInit),
		domain.ActionMove:   handlers.WithPayload(actions.HandleMove),
		domain.ActionStrike: handlers.WithEmptyPayload(actions.HandleStrike),
		domain.ActionAnswer: handlers.WithPayload(actions.HandleAnswer),
		domain.ActionNewMap: handlers.WithEmptyPayload(actions.HandleNewMap),

		domain.ActionTeleport:  handlers.WithPayload(admin.HandleTeleport),
		domain.ActionSpawnWisp: handlers.WithPayload(admin.HandleSpawnWisp),
	}
}

// recordable - действия, которые меняют партию и попадают в повтор
func recordable(a domain.ActionType) bool {
	switch a {
	case domain.ActionMove, domain.ActionAnswer, domain.ActionNewMap,
		domain.ActionTeleport, domain.ActionSpawnWisp:
		return true
	}
	return false
}

// CreateSession создает новую партию. Зерно сессии N - Seed + N.
func (s *GameService) CreateSession() (*Instance, error) {
	s.mu.Lock()
	cfg := s.cfg.Game
	cfg.Seed += s.created
	s.created++
	s.mu.Unlock()

	return s.CreateSessionWithConfig(cfg)
}

// CreateSessionWithConfig создает партию с явным конфигом
func (s *GameService) CreateSessionWithConfig(cfg game.Config) (*Instance, error) {
	g, err := game.NewGameSession(cfg, s.provider)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	inst := NewInstance(generateID(), g, s)

	s.mu.Lock()
	s.instances[inst.ID] = inst
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"session_id": inst.ID,
		"seed":       g.Config().Seed,
	}).Info("Session created")
	return inst, nil
}

func (s *GameService) GetInstance(id string) (*Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[id]
	return inst, ok
}

// CloseSession останавливает партию и сохраняет повтор (если задан ReplayDir)
func (s *GameService) CloseSession(id string) error {
	s.mu.Lock()
	inst, ok := s.instances[id]
	delete(s.instances, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	inst.Close()

	log := s.log.WithField("session_id", id)
	if s.replays == nil {
		log.Info("Session closed")
		return nil
	}

	rs := inst.ReplaySnapshot()
	if len(rs.Actions) == 0 {
		log.Info("Session closed, nothing to replay")
		return nil
	}
	path, err := s.replays.Save(rs)
	if err != nil {
		log.WithError(err).Error("Failed to save replay")
		return err
	}
	log.WithFields(logrus.Fields{
		"path":    path,
		"actions": len(rs.Actions),
	}).Info("Session closed, replay saved")
	return nil
}

// Sessions - сводка по активным партиям, отсортированная по ID
func (s *GameService) Sessions() []SessionInfo {
	s.mu.RLock()
	list := make([]*Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		list = append(list, inst)
	}
	s.mu.RUnlock()

	out := make([]SessionInfo, 0, len(list))
	for _, inst := range list {
		out = append(out, SessionInfo{
			ID:         inst.ID,
			Seed:       inst.Game.Config().Seed,
			Stats:      inst.Game.Stats(),
			SkillCheck: inst.HasSkillCheck(),
			Actions:    len(inst.ReplaySnapshot().Actions),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Token - ID сессии, его проставляет соединение.
func (s *GameService) ProcessCommand(cmd api.ClientCommand) error {
	inst, ok := s.GetInstance(cmd.Token)
	if !ok {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, cmd.Token)
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.closed {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, cmd.Token)
	}

	if err := s.execute(inst, cmd); err != nil {
		inst.AddLog(err.Error(), domain.MsgError)
		s.publishError(inst)
		return err
	}
	s.publishUpdate(inst)
	return nil
}

// execute выполняет хендлер и пишет повтор. Вызывается под inst.mu.
func (s *GameService) execute(inst *Instance, cmd api.ClientCommand) error {
	action := domain.ParseAction(cmd.Action)

	if action == domain.ActionText {
		parsed, err := parseText(cmd.Payload)
		if err != nil {
			return err
		}
		action = domain.ParseAction(parsed.Action)
		cmd = parsed
	}

	if action.IsCheat() && !s.cfg.AllowCheats {
		return fmt.Errorf("%w: %s", ErrCheatsDisabled, action)
	}

	handler, ok := s.handlers[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}

	tick := inst.Game.Stats().Tick
	ctx := handlers.Context{
		Game:       inst.Game,
		Encounters: inst,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		return err
	}

	inst.collectGameMessages()
	if result.Msg != "" {
		inst.AddLog(result.Msg, result.MsgType)
	}
	if recordable(action) {
		inst.record(action, cmd.Payload, tick)
	}

	s.log.WithFields(logrus.Fields{
		"session_id": inst.ID,
		"action":     action,
		"tick":       tick,
	}).Debug("Command executed")
	return nil
}

// parseText разбирает TEXT-команду в обычную
func parseText(raw json.RawMessage) (api.ClientCommand, error) {
	var p api.TextPayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return api.ClientCommand{}, fmt.Errorf("invalid payload format: %w", err)
		}
	}
	if err := p.Validate(); err != nil {
		return api.ClientCommand{}, fmt.Errorf("validation failed: %w", err)
	}
	return command.Parse(p.Line)
}

// generateID создает простой уникальный ID сессии
func generateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// CloseAll закрывает все партии (graceful shutdown). Повторы сохраняются.
func (s *GameService) CloseAll() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.instances))
	for id := range s.instances {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		if err := s.CloseSession(id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			s.log.WithError(err).WithField("session_id", id).Warn("Close on shutdown failed")
		}
	}
}
