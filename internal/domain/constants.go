package domain

// Размер карты по умолчанию
const (
	DefaultMapWidth  = 20
	DefaultMapHeight = 15
)

// Огоньки
const (
	MinWisps          = 1
	MaxWisps          = 3
	WispSpawnAttempts = 100
	EncounterRange    = 1 // Чебышевское расстояние, на котором срабатывает встреча
)

// Очки
const (
	TreasureScore = 10
)
