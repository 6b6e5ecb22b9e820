package tui

import (
	"github.com/gdamore/tcell/v2"

	"wisp-server/internal/domain"
)

// Mode - что сейчас ждет ввода
type Mode uint8

const (
	ModeExplore Mode = iota
	ModeQuiz
	ModeSkillCheck
)

// Intent - намерение игрока, в которое превращается нажатие
type Intent struct {
	Kind   IntentKind
	Dir    domain.Direction
	Option int // Номер варианта квиза, с нуля
}

type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentQuit
	IntentMove
	IntentAnswer
	IntentStrike
	IntentNewMap
)

var arrowDirections = map[tcell.Key]domain.Direction{
	tcell.KeyUp:    domain.DirUp,
	tcell.KeyDown:  domain.DirDown,
	tcell.KeyLeft:  domain.DirLeft,
	tcell.KeyRight: domain.DirRight,
}

var wasdDirections = map[rune]domain.Direction{
	'w': domain.DirUp, 'W': domain.DirUp,
	's': domain.DirDown, 'S': domain.DirDown,
	'a': domain.DirLeft, 'A': domain.DirLeft,
	'd': domain.DirRight, 'D': domain.DirRight,
}

// KeyIntent переводит клавишу в намерение с учетом режима
func KeyIntent(ev *tcell.EventKey, mode Mode) Intent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Intent{Kind: IntentQuit}
	}

	switch mode {
	case ModeSkillCheck:
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
			return Intent{Kind: IntentStrike}
		}
		return Intent{}

	case ModeQuiz:
		if ev.Key() == tcell.KeyRune && ev.Rune() >= '1' && ev.Rune() <= '9' {
			return Intent{Kind: IntentAnswer, Option: int(ev.Rune() - '1')}
		}
		return Intent{}
	}

	if d, ok := arrowDirections[ev.Key()]; ok {
		return Intent{Kind: IntentMove, Dir: d}
	}
	if ev.Key() != tcell.KeyRune {
		return Intent{}
	}
	if d, ok := wasdDirections[ev.Rune()]; ok {
		return Intent{Kind: IntentMove, Dir: d}
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return Intent{Kind: IntentQuit}
	case 'n', 'N':
		return Intent{Kind: IntentNewMap}
	}
	return Intent{}
}
