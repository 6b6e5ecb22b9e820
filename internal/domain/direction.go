package domain

import "strings"

// Direction - одно из четырех направлений ввода игрока
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

var directionToString = map[Direction]string{
	DirUp:    "up",
	DirDown:  "down",
	DirLeft:  "left",
	DirRight: "right",
}

// Синонимы: стрелки, WASD и стороны света (текстовые команды)
var directionAliases = map[string]Direction{
	"up": DirUp, "north": DirUp, "n": DirUp, "w": DirUp,
	"down": DirDown, "south": DirDown, "s": DirDown,
	"left": DirLeft, "west": DirLeft, "a": DirLeft,
	"right": DirRight, "east": DirRight, "e": DirRight, "d": DirRight,
}

// ParseDirection конвертирует строку в Direction (нечувствительно к регистру)
func ParseDirection(s string) Direction {
	if d, ok := directionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d
	}
	return DirNone
}

// Delta возвращает шаг по осям
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	if s, ok := directionToString[d]; ok {
		return s
	}
	return "none"
}
