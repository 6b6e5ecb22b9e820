package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"wisp-server/internal/domain"
	"wisp-server/internal/game"
	"wisp-server/internal/skillcheck"
	"wisp-server/pkg/logger"
)

// Bot - "игрок-компьютер" (Headless Agent). Играет партией напрямую,
// через те же методы GameSession, что вызывают хендлеры сервера.
//
// Каждый шаг:
//  1. Идет встреча -> проверка навыка на чистой Session: ждем зону и бьем.
//  2. Открыт квиз -> ответ по словарю.
//  3. Иначе -> шаг по кратчайшему пути к ближайшему сокровищу.
//     Сокровищ не осталось (или до них не дойти) -> новая карта.
type Bot struct {
	Game *game.GameSession

	dict    map[string]string           // TargetWord -> English
	blocked mapset.Set[domain.Position] // Клетки, куда ход был отклонен
	report  Report
	log     *logrus.Entry
}

// Report - что бот успел сделать
type Report struct {
	Steps       int        `json:"steps"`
	Moves       int        `json:"moves"`
	Answers     int        `json:"answers"`
	SkillChecks int        `json:"skillChecks"`
	NewMaps     int        `json:"newMaps"`
	Stats       game.Stats `json:"stats"`
}

func NewBot(g *game.GameSession) *Bot {
	dict := make(map[string]string)
	for _, w := range g.Words() {
		dict[w.TargetWord] = w.English
	}
	return &Bot{
		Game:    g,
		dict:    dict,
		blocked: mapset.New[domain.Position](),
		log:     logger.For("bot").WithField("seed", g.Config().Seed),
	}
}

// Run делает до maxSteps шагов. Останавливается раньше при отмене ctx.
func (b *Bot) Run(ctx context.Context, maxSteps int) (Report, error) {
	for i := 0; i < maxSteps; i++ {
		select {
		case <-ctx.Done():
			return b.Report(), ctx.Err()
		default:
		}
		if err := b.Step(); err != nil {
			return b.Report(), fmt.Errorf("step %d: %w", i, err)
		}
	}

	rep := b.Report()
	b.log.WithFields(logrus.Fields{
		"steps":  rep.Steps,
		"score":  rep.Stats.Score,
		"wisps":  rep.Stats.WispsCaptured,
		"maps":   rep.Stats.MapsPlayed,
		"checks": rep.SkillChecks,
	}).Info("Bot run finished")
	return rep, nil
}

func (b *Bot) Report() Report {
	rep := b.report
	rep.Stats = b.Game.Stats()
	return rep
}

// Step - одно решение бота
func (b *Bot) Step() error {
	b.report.Steps++

	if w, ok := b.Game.PendingEncounter(); ok {
		return b.resolveSkillCheck(w)
	}

	if q := b.Game.OpenQuiz(); q != nil {
		return b.answer(q)
	}

	view := b.Game.Snapshot()
	dir, ok := b.nextStep(view)
	if !ok {
		b.report.NewMaps++
		b.blocked = mapset.New[domain.Position]()
		return b.Game.NewMap()
	}

	res, err := b.Game.Move(dir)
	if errors.Is(err, game.ErrBlocked) {
		dx, dy := dir.Delta()
		b.blocked.Put(view.Player.Shift(dx, dy))
		return nil
	}
	if err != nil {
		return err
	}
	if res.Moved {
		b.report.Moves++
	}
	return nil
}

// resolveSkillCheck - ждем, пока маркер войдет в зону, и бьем
func (b *Bot) resolveSkillCheck(w domain.WispSnapshot) error {
	b.report.SkillChecks++

	out, ticks := solveSkillCheck(w.Rarity, b.Game.Config().SkillCheck)
	b.log.WithFields(logrus.Fields{
		"wisp":   w.Name,
		"ticks":  ticks,
		"caught": out.Caught,
	}).Debug("Skill check solved")

	_, err := b.Game.ResolveEncounter(out)
	return err
}

// solveSkillCheck крутит чистую Session до зоны успеха и бьет
func solveSkillCheck(rarity domain.Rarity, cfg skillcheck.Config) (skillcheck.Outcome, int) {
	s := skillcheck.NewSession(rarity, cfg)
	for s.Phase() == skillcheck.PhaseRunning && !s.InZone() {
		s.Advance()
	}
	s.Strike()

	out, _ := s.Outcome()
	return out, s.Ticks()
}

func (b *Bot) answer(q *game.Quiz) error {
	b.report.Answers++

	ans, ok := b.dict[q.Word.TargetWord]
	if !ok && len(q.Options) > 0 {
		// Слова нет в словаре - угадываем
		ans = q.Options[0]
	}
	_, err := b.Game.Answer(ans)
	return err
}

var botDirections = []domain.Direction{domain.DirUp, domain.DirDown, domain.DirLeft, domain.DirRight}

// nextStep - первый шаг кратчайшего пути (BFS) к ближайшему сокровищу
func (b *Bot) nextStep(view game.View) (domain.Direction, bool) {
	type node struct {
		pos   domain.Position
		first domain.Direction
	}

	start := view.Player
	visited := mapset.New[domain.Position]()
	visited.Put(start)
	queue := []node{{pos: start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.pos != start && view.Grid.Kind(cur.pos) == domain.CellTreasure {
			return cur.first, true
		}

		for _, d := range botDirections {
			dx, dy := d.Delta()
			next := cur.pos.Shift(dx, dy)
			if visited.Has(next) || b.blocked.Has(next) || !view.Grid.IsPassable(next) {
				continue
			}
			visited.Put(next)

			first := cur.first
			if cur.pos == start {
				first = d
			}
			queue = append(queue, node{pos: next, first: first})
		}
	}
	return domain.DirNone, false
}
