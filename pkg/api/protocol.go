package api

import (
	"encoding/json"
)

// Типы ответов сервера
const (
	ResponseUpdate     = "UPDATE"
	ResponseSkillCheck = "SKILL_CHECK"
	ResponseError      = "ERROR"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// UPDATE несет полный снимок партии, SKILL_CHECK - только состояние
// проверки навыка (они идут часто, карта в них не нужна).
type ServerResponse struct {
	// Type тип сообщения: UPDATE, SKILL_CHECK или ERROR.
	Type string `json:"type"`

	// SessionID сессия, которой принадлежит снимок.
	SessionID string `json:"sessionId,omitempty"`

	// Tick игровое время. Увеличивается только на принятом ходе игрока.
	Tick int `json:"tick"`

	// Grid метаданные о размере карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map все клетки карты построчно.
	Map []TileView `json:"map,omitempty"`

	Player *PositionView `json:"player,omitempty"`

	// Wisps огоньки на карте (пойманные тоже, с флагом captured).
	Wisps []WispView `json:"wisps,omitempty"`

	// Quiz открытый вопрос на сокровище.
	Quiz *QuizView `json:"quiz,omitempty"`

	// SkillCheck состояние проверки навыка, если идет встреча.
	SkillCheck *SkillCheckView `json:"skillCheck,omitempty"`

	Stats *StatsView `json:"stats,omitempty"`

	// Logs новые сообщения с прошлого ответа.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одной клетки карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Kind - тип местности ("grass", "water", ...).
	Kind string `json:"kind"`

	// Symbol и Color - визуальное представление клетки.
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	Passable bool `json:"passable"`
}

type PositionView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WispView это DTO огонька.
type WispView struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Rarity   string       `json:"rarity"`
	Speed    int          `json:"speed"`
	State    string       `json:"state"`
	Captured bool         `json:"captured"`
	Pos      PositionView `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
	} `json:"render"`
}

// QuizView - вопрос без правильного ответа: его знает только сервер.
type QuizView struct {
	TargetWord string       `json:"targetWord"`
	Options    []string     `json:"options"`
	Treasure   PositionView `json:"treasure"`
}

// SkillCheckView - состояние полосы проверки навыка.
type SkillCheckView struct {
	WispID    string  `json:"wispId"`
	Rarity    string  `json:"rarity"`
	Phase     string  `json:"phase"` // RUNNING, SUCCESS, FAIL
	Marker    float64 `json:"marker"`
	ZoneMin   float64 `json:"zoneMin"`
	ZoneMax   float64 `json:"zoneMax"`
	Bounces   int     `json:"bounces"`
	Caught    bool    `json:"caught,omitempty"`
	Finished  bool    `json:"finished"`
	Reward    int     `json:"reward,omitempty"`
	Direction int     `json:"direction"`
}

// StatsView - счет и прогресс.
type StatsView struct {
	Score              int    `json:"score"`
	Multiplier         int    `json:"multiplier"`
	TreasuresTotal     int    `json:"treasuresTotal"`
	TreasuresCollected int    `json:"treasuresCollected"`
	WispsCaptured      int    `json:"wispsCaptured"`
	MapsPlayed         int    `json:"mapsPlayed"`
	Won                bool   `json:"won"`
	Language           string `json:"language"`
}

// LogEntry представляет одну запись в игровом журнале.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, SUCCESS, WARNING, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сессии. Сервер проставляет его сам по соединению.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, MOVE, STRIKE, ANSWER, NEW_MAP, TEXT.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Direction string `json:"direction"` // up, down, left, right (или w/a/s/d)
}

// AnswerPayload используется для ANSWER.
type AnswerPayload struct {
	Answer string `json:"answer"`
}

// TextPayload - свободная текстовая команда ("go north", "answer water").
type TextPayload struct {
	Line string `json:"line"`
}

// ResolvePayload - итог проверки навыка в записи реплея:
// сколько тиков прошло и был ли удар.
type ResolvePayload struct {
	Ticks  int  `json:"ticks"`
	Struck bool `json:"struck"`
}

// PositionPayload используется для отладочных команд (TELEPORT).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SpawnWispPayload используется для SPAWN_WISP.
type SpawnWispPayload struct {
	Rarity string `json:"rarity"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}
