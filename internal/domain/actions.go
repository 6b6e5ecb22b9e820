package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionStrike
	ActionAnswer
	ActionNewMap
	ActionText
	// ActionResolve - не команда клиента, а итог проверки навыка в записи повтора
	ActionResolve

	// Отладочные команды (только с -cheats)
	ActionTeleport
	ActionSpawnWisp
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":    ActionInit,
	"MOVE":    ActionMove,
	"STRIKE":  ActionStrike,
	"ANSWER":  ActionAnswer,
	"NEW_MAP": ActionNewMap,
	"TEXT":    ActionText,
	"RESOLVE": ActionResolve,

	"TELEPORT":   ActionTeleport,
	"SPAWN_WISP": ActionSpawnWisp,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:    "INIT",
	ActionMove:    "MOVE",
	ActionStrike:  "STRIKE",
	ActionAnswer:  "ANSWER",
	ActionNewMap:  "NEW_MAP",
	ActionText:    "TEXT",
	ActionResolve: "RESOLVE",

	ActionTeleport:  "TELEPORT",
	ActionSpawnWisp: "SPAWN_WISP",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// IsCheat - отладочное действие, которое выполняется только с флагом -cheats
func (a ActionType) IsCheat() bool {
	return a == ActionTeleport || a == ActionSpawnWisp
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
