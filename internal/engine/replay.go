package engine

import (
	"encoding/json"
	"fmt"

	"wisp-server/internal/domain"
	"wisp-server/internal/engine/handlers"
	"wisp-server/internal/game"
	"wisp-server/internal/skillcheck"
	"wisp-server/pkg/api"
	"wisp-server/pkg/logger"
)

// replayEncounters - встречи в повторе: Runner не нужен, итог
// восстанавливается из записи RESOLVE
type replayEncounters struct{}

func (replayEncounters) StartSkillCheck(domain.WispSnapshot) {}
func (replayEncounters) Strike() bool                        { return false }

// PlayReplay пересоздает партию из записи: то же зерно, те же действия.
// Проверки навыка переигрываются чистой Session по числу тиков.
func PlayReplay(rs *domain.ReplaySession, provider game.WordProvider) (*game.GameSession, error) {
	cfg := game.DefaultConfig()
	if len(rs.Config) > 0 {
		if err := json.Unmarshal(rs.Config, &cfg); err != nil {
			return nil, fmt.Errorf("replay config: %w", err)
		}
	}
	cfg.Seed = rs.Seed
	if rs.Width > 0 {
		cfg.Width = rs.Width
	}
	if rs.Height > 0 {
		cfg.Height = rs.Height
	}

	g, err := game.NewGameSession(cfg, provider)
	if err != nil {
		return nil, err
	}

	registry := newHandlerRegistry()
	ctx := handlers.Context{Game: g, Encounters: replayEncounters{}}
	log := logger.For("replay").WithField("seed", rs.Seed)

	for idx, act := range rs.Actions {
		if tick := g.Stats().Tick; tick != act.Tick {
			return g, fmt.Errorf("action %d (%s): tick mismatch: recorded %d, got %d", idx, act.Action, act.Tick, tick)
		}

		if act.Action == domain.ActionResolve {
			if err := replayResolve(g, act.Payload); err != nil {
				return g, fmt.Errorf("action %d (%s): %w", idx, act.Action, err)
			}
			continue
		}

		handler, ok := registry[act.Action]
		if !ok {
			return g, fmt.Errorf("action %d: %w: %s", idx, ErrUnknownAction, act.Action)
		}
		if _, err := handler(ctx, act.Payload); err != nil {
			return g, fmt.Errorf("action %d (%s): %w", idx, act.Action, err)
		}
	}

	log.WithField("actions", len(rs.Actions)).Info("Replay finished")
	return g, nil
}

func replayResolve(g *game.GameSession, raw json.RawMessage) error {
	var p api.ResolvePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("invalid payload format: %w", err)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	w, ok := g.PendingEncounter()
	if !ok {
		return game.ErrNoEncounter
	}
	out := skillcheck.Replay(w.Rarity, g.Config().SkillCheck, p.Ticks, p.Struck)
	_, err := g.ResolveEncounter(out)
	return err
}
