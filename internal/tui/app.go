package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"wisp-server/internal/audio"
	"wisp-server/internal/domain"
	"wisp-server/internal/game"
	"wisp-server/internal/skillcheck"
	"wisp-server/pkg/logger"
)

// Сколько последних сообщений журнала держать на экране
const visibleMessages = 6

// Sound - звуковые сигналы. *audio.Cues его реализует.
type Sound interface {
	Play(cue audio.Cue)
}

type silent struct{}

func (silent) Play(audio.Cue) {}

// App - терминальный клиент одной партии. Вся игра идет в одной горутине
// цикла Run: клавиши, кадры проверки навыка и отрисовка.
type App struct {
	screen tcell.Screen
	game   *game.GameSession
	sound  Sound
	log    *logrus.Entry

	ctx   context.Context
	check *skillcheck.Runner
	wisp  domain.WispSnapshot
	frame skillcheck.Update

	messages []domain.Message
	quit     bool
}

// New - sound может быть nil (без звука)
func New(screen tcell.Screen, g *game.GameSession, sound Sound) *App {
	if sound == nil {
		sound = silent{}
	}
	a := &App{
		screen: screen,
		game:   g,
		sound:  sound,
		log:    logger.For("tui"),
		ctx:    context.Background(),
	}
	a.pullMessages()
	return a
}

// Run крутит цикл до выхода игрока или отмены ctx
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				// Экран закрыт
				close(events)
				return
			}
			events <- ev
		}
	}()

	a.draw()
	for !a.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a.Apply(KeyIntent(ev, a.Mode()))
			case *tcell.EventResize:
				a.screen.Sync()
			}

		case u, ok := <-a.updates():
			if !ok {
				a.finishSkillCheck()
			} else {
				a.frame = u
			}
		}
		a.draw()
	}
	return nil
}

// updates - nil-канал, пока проверки нет: select его просто не выбирает
func (a *App) updates() <-chan skillcheck.Update {
	if a.check == nil {
		return nil
	}
	return a.check.Updates()
}

func (a *App) Mode() Mode {
	if _, ok := a.game.PendingEncounter(); ok {
		return ModeSkillCheck
	}
	if a.game.OpenQuiz() != nil {
		return ModeQuiz
	}
	return ModeExplore
}

// Apply выполняет намерение игрока
func (a *App) Apply(in Intent) {
	switch in.Kind {
	case IntentQuit:
		a.quit = true
	case IntentMove:
		a.move(in.Dir)
	case IntentAnswer:
		a.answer(in.Option)
	case IntentStrike:
		if a.check != nil {
			a.check.Strike()
		}
	case IntentNewMap:
		if err := a.game.NewMap(); err != nil {
			a.notify(domain.MsgError, err.Error())
		}
	}
	a.pullMessages()
}

func (a *App) move(dir domain.Direction) {
	res, err := a.game.Move(dir)
	if errors.Is(err, game.ErrBlocked) {
		a.sound.Play(audio.CueBlocked)
		a.notify(domain.MsgWarning, err.Error())
		return
	}
	if err != nil {
		a.notify(domain.MsgError, err.Error())
		return
	}

	switch {
	case res.Collected:
		a.sound.Play(audio.CueTreasure)
	case res.Quiz != nil:
		a.sound.Play(audio.CueEncounter)
	default:
		a.sound.Play(audio.CueStep)
	}

	if res.Capture != nil {
		a.playCapture(res.Capture.Caught)
	}
	if res.Encounter != nil {
		a.startSkillCheck(*res.Encounter)
	}
}

func (a *App) answer(option int) {
	q := a.game.OpenQuiz()
	if q == nil || option < 0 || option >= len(q.Options) {
		return
	}
	res, err := a.game.Answer(q.Options[option])
	if err != nil {
		a.notify(domain.MsgError, err.Error())
		return
	}
	if res.Correct {
		a.sound.Play(audio.CueTreasure)
	} else {
		a.sound.Play(audio.CueWrong)
	}
}

func (a *App) startSkillCheck(w domain.WispSnapshot) {
	a.wisp = w
	a.check = skillcheck.Start(a.ctx, w.Rarity, a.game.Config().SkillCheck)
	a.frame = skillcheck.Update{Marker: skillcheck.ScaleMax}
	a.sound.Play(audio.CueEncounter)

	a.log.WithFields(logrus.Fields{
		"wisp":   w.Name,
		"rarity": w.Rarity,
		"period": a.check.Period(),
	}).Debug("Skill check started")
}

// finishSkillCheck - Runner закрыл канал: применяем итог
func (a *App) finishSkillCheck() {
	check := a.check
	a.check = nil

	res, ok := check.Result()
	if !ok {
		// Отменен вместе с ctx
		return
	}
	capture, err := a.game.ResolveEncounter(res.Outcome)
	if err != nil {
		a.notify(domain.MsgError, err.Error())
		return
	}
	a.playCapture(capture.Caught)
	a.pullMessages()
}

func (a *App) playCapture(caught bool) {
	if caught {
		a.sound.Play(audio.CueCatch)
	} else {
		a.sound.Play(audio.CueEscape)
	}
}

func (a *App) notify(kind, text string) {
	a.messages = append(a.messages, domain.Message{Type: kind, Text: text})
	a.trimMessages()
}

func (a *App) pullMessages() {
	a.messages = append(a.messages, a.game.DrainMessages()...)
	a.trimMessages()
}

func (a *App) trimMessages() {
	if n := len(a.messages); n > visibleMessages {
		a.messages = a.messages[n-visibleMessages:]
	}
}

// Messages - сообщения, видимые сейчас на экране
func (a *App) Messages() []domain.Message {
	return a.messages
}

func (a *App) draw() {
	a.screen.Clear()
	a.Render(a.screen)
	a.screen.Show()
}

// Render рисует весь кадр на c
func (a *App) Render(c Canvas) {
	v := a.game.Snapshot()
	DrawMap(c, 0, 0, v)

	y := v.Grid.Height + 1
	DrawText(c, 0, y, StatusLine(v.Stats), styleText)
	y += 2

	switch {
	case a.check != nil:
		DrawText(c, 0, y, fmt.Sprintf("A %s %s! Press SPACE in the green zone.", a.wisp.Rarity, a.wisp.Name), styleWarning)
		DrawSkillBar(c, 0, y+1, a.frame, a.game.Config().SkillCheck.SuccessThreshold)
		y += 3
	case v.Quiz != nil:
		for _, line := range QuizLines(v.Quiz) {
			DrawText(c, 0, y, line, styleText)
			y++
		}
		y++
	default:
		DrawText(c, 0, y, "Arrows/WASD - move, n - new map, q - quit", styleDim)
		y += 2
	}

	for _, m := range a.messages {
		DrawText(c, 0, y, m.Text, messageStyle(m.Type))
		y++
	}
}
