package domain

import "encoding/json"

// ReplayAction - запись одного принятого действия
type ReplayAction struct {
	Tick    int             `json:"tick"`    // Игровой тик до действия
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами (уже нормализованными)
}

// ReplaySession - полная запись партии. Config - JSON game.Config,
// по нему сессия пересоздается с тем же зерном.
type ReplaySession struct {
	Seed      int64           `json:"seed"`
	Timestamp int64           `json:"timestamp"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Config    json.RawMessage `json:"config,omitempty"`
	Actions   []ReplayAction  `json:"actions"`
}
