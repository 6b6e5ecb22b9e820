package domain

import (
	"strings"

	"wisp-server/internal/core/types"
	"wisp-server/internal/core/types/enums"
)

// Rarity - редкость огонька. Определяет скорость и шанс поимки.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
)

// AllRarities - порядок важен: индекс выбирается из rng при спавне
var AllRarities = []Rarity{RarityCommon, RarityUncommon, RarityRare}

type rarityInfo struct {
	name         string
	speed        int     // Ходит раз в speed тиков (меньше - быстрее)
	captureProb  float64 // Шанс поимки при прямом захвате
	displayColor uint32
}

var rarityTable = map[Rarity]rarityInfo{
	RarityCommon:   {"common", 3, 1.0, 0xFF6347},
	RarityUncommon: {"uncommon", 2, 0.8, 0x32CD32},
	RarityRare:     {"rare", 1, 0.7, 0xEE82EE},
}

// Speed возвращает период движения в игровых тиках
func (r Rarity) Speed() int {
	if info, ok := rarityTable[r]; ok {
		return info.speed
	}
	return rarityTable[RarityCommon].speed
}

// CaptureProbability возвращает шанс поимки
func (r Rarity) CaptureProbability() float64 {
	if info, ok := rarityTable[r]; ok {
		return info.captureProb
	}
	return 1.0
}

// Glyph - как огонек рисуется на карте
func (r Rarity) Glyph() types.Glyph {
	return types.MakeGlyph(rarityTable[r].displayColor, 'w')
}

func (r Rarity) String() string {
	if info, ok := rarityTable[r]; ok {
		return info.name
	}
	return "unknown"
}

// ParseRarity конвертирует строку в Rarity
func ParseRarity(s string) (Rarity, bool) {
	for r, info := range rarityTable {
		if info.name == strings.ToLower(s) {
			return r, true
		}
	}
	return RarityCommon, false
}

// Wisp - блуждающий огонек. Принадлежит только симуляции огоньков,
// наружу отдается копией (WispSnapshot).
type Wisp struct {
	ID          types.EntityID  `json:"id"`
	Name        string          `json:"name"`
	Rarity      Rarity          `json:"rarity"`
	Speed       int             `json:"speed"`
	Pos         Position        `json:"pos"`
	Captured    bool            `json:"captured"`
	MoveCounter int             `json:"moveCounter"`
	State       enums.WispState `json:"state"`
}

// WispSnapshot - копия огонька только для чтения
type WispSnapshot = Wisp
