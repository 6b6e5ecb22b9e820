package engine

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"wisp-server/internal/domain"
	"wisp-server/internal/game"
	"wisp-server/internal/skillcheck"
	"wisp-server/pkg/api"
	"wisp-server/pkg/logger"
)

// Instance - одна запущенная партия (одно подключение).
// mu сериализует команды клиента и итог проверки навыка.
type Instance struct {
	ID      string
	Game    *game.GameSession
	Service *GameService

	mu     sync.Mutex
	ctx    context.Context
	stop   context.CancelFunc
	check  *activeCheck
	closed bool

	Logs   []api.LogEntry // Логи с прошлой рассылки
	logSeq int

	Replay *domain.ReplaySession // Лента действий

	log *logrus.Entry
}

// activeCheck - идущая проверка навыка
type activeCheck struct {
	wisp   domain.WispSnapshot
	runner *skillcheck.Runner
	cancel context.CancelFunc
}

func NewInstance(id string, g *game.GameSession, service *GameService) *Instance {
	ctx, stop := context.WithCancel(context.Background())
	cfg := g.Config()

	rawCfg, err := json.Marshal(cfg)
	if err != nil {
		rawCfg = nil
	}

	return &Instance{
		ID:      id,
		Game:    g,
		Service: service,
		ctx:     ctx,
		stop:    stop,
		Logs:    []api.LogEntry{},
		Replay: &domain.ReplaySession{
			Seed:      cfg.Seed,
			Timestamp: time.Now().Unix(),
			Width:     cfg.Width,
			Height:    cfg.Height,
			Config:    rawCfg,
			Actions:   make([]domain.ReplayAction, 0),
		},
		log: logger.For("instance").WithField("session_id", id),
	}
}

// StartSkillCheck запускает Runner. Вызывается хендлером под i.mu.
func (i *Instance) StartSkillCheck(w domain.WispSnapshot) {
	if i.check != nil {
		i.check.cancel()
	}

	ctx, cancel := context.WithCancel(i.ctx)
	runner := skillcheck.Start(ctx, w.Rarity, i.Game.Config().SkillCheck)
	check := &activeCheck{wisp: w, runner: runner, cancel: cancel}
	i.check = check

	i.log.WithFields(logrus.Fields{
		"wisp_id": w.ID,
		"rarity":  w.Rarity,
		"period":  runner.Period(),
	}).Info("Skill check started")

	go i.watchSkillCheck(check)
}

// Strike передает удар идущей проверке. Вызывается под i.mu.
func (i *Instance) Strike() bool {
	if i.check == nil {
		return false
	}
	i.check.runner.Strike()
	return true
}

// watchSkillCheck пересылает кадры клиенту и применяет итог
func (i *Instance) watchSkillCheck(check *activeCheck) {
	cfg := i.Game.Config().SkillCheck
	for u := range check.runner.Updates() {
		i.Service.Hub.SendTo(i.ID, BuildSkillCheckState(i.ID, check.wisp, u, cfg))
	}

	res, ok := check.runner.Result()
	if !ok {
		// Отменено: закрытие сессии
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.check != check || i.closed {
		return
	}
	i.check = nil
	check.cancel()

	tick := i.Game.Stats().Tick
	if _, err := i.Game.ResolveEncounter(res.Outcome); err != nil {
		i.log.WithError(err).Error("Resolve encounter failed")
		return
	}

	payload, _ := json.Marshal(api.ResolvePayload{Ticks: res.Ticks, Struck: res.Struck})
	i.record(domain.ActionResolve, payload, tick)
	i.Service.publishUpdate(i)
}

// record пишет действие в ленту повтора. Вызывается под i.mu.
func (i *Instance) record(action domain.ActionType, payload json.RawMessage, tick int) {
	if payload == nil {
		payload = json.RawMessage{}
	}
	i.Replay.Actions = append(i.Replay.Actions, domain.ReplayAction{
		Tick:    tick,
		Action:  action,
		Payload: append(json.RawMessage(nil), payload...),
	})
}

// HasSkillCheck - идет ли проверка навыка
func (i *Instance) HasSkillCheck() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.check != nil
}

// ReplaySnapshot - копия ленты (для сохранения и отладки)
func (i *Instance) ReplaySnapshot() *domain.ReplaySession {
	i.mu.Lock()
	defer i.mu.Unlock()

	cp := *i.Replay
	cp.Actions = append([]domain.ReplayAction(nil), i.Replay.Actions...)
	return &cp
}

// Close останавливает проверку навыка. Повторный вызов ничего не делает.
func (i *Instance) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return
	}
	i.closed = true
	i.check = nil
	i.stop()
}
