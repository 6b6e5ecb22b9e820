package enums

// WispState - что огонек сделал на последнем тике.
// Только для отображения, на логику симуляции не влияет.
type WispState uint8

const (
	WispStateUnknown WispState = iota
	WispStateIdle              // Счетчик еще не дошел до хода
	WispStateFleeing           // Сделал шаг от игрока
	WispStateCornered          // Хотел уйти, но некуда
	WispStateCaptured
)

var wispStateToString = map[WispState]string{
	WispStateIdle:     "idle",
	WispStateFleeing:  "fleeing",
	WispStateCornered: "cornered",
	WispStateCaptured: "captured",
}

func (s WispState) String() string {
	if val, ok := wispStateToString[s]; ok {
		return val
	}
	return "unknown"
}
