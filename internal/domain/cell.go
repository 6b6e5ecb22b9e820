package domain

import (
	"strings"

	"wisp-server/internal/core/types"
)

// CellKind - тип клетки местности
type CellKind uint8

const (
	CellGrass CellKind = iota
	CellWater
	CellTree
	CellMountain
	CellPath
	CellTreasure
	CellHouse
	CellCave
)

// Cell - атомарная единица карты.
// Passable дублирует таблицу проходимости, чтобы клиенту не нужно было её знать.
type Cell struct {
	Kind     CellKind `json:"kind"`
	Passable bool     `json:"passable"`
}

type cellInfo struct {
	name     string
	passable bool
	glyph    types.Glyph
}

var cellTable = map[CellKind]cellInfo{
	CellGrass:    {"grass", true, types.MakeGlyph(0x7CFC00, '.')},
	CellWater:    {"water", false, types.MakeGlyph(0x1E90FF, '~')},
	CellTree:     {"tree", false, types.MakeGlyph(0x228B22, 'T')},
	CellMountain: {"mountain", false, types.MakeGlyph(0xA9A9A9, '^')},
	CellPath:     {"path", true, types.MakeGlyph(0xF5DEB3, ':')},
	CellTreasure: {"treasure", true, types.MakeGlyph(0xFFD700, '$')},
	CellHouse:    {"house", false, types.MakeGlyph(0xCD853F, 'H')},
	CellCave:     {"cave", true, types.MakeGlyph(0x696969, 'O')},
}

var cellNameToKind = map[string]CellKind{
	"grass":    CellGrass,
	"water":    CellWater,
	"tree":     CellTree,
	"mountain": CellMountain,
	"path":     CellPath,
	"treasure": CellTreasure,
	"house":    CellHouse,
	"cave":     CellCave,
}

// NewCell создает клетку с проходимостью из таблицы
func NewCell(kind CellKind) Cell {
	return Cell{Kind: kind, Passable: kind.Passable()}
}

// Passable сообщает, может ли сущность стоять на клетке такого типа
func (k CellKind) Passable() bool {
	return cellTable[k].passable
}

// Glyph возвращает символ и цвет для отрисовки
func (k CellKind) Glyph() types.Glyph {
	if info, ok := cellTable[k]; ok {
		return info.glyph
	}
	return types.MakeGlyph(0xFFFFFF, '?')
}

// String возвращает строковое представление (для логов и протокола)
func (k CellKind) String() string {
	if info, ok := cellTable[k]; ok {
		return info.name
	}
	return "unknown"
}

// ParseCellKind конвертирует строку в CellKind
func ParseCellKind(s string) (CellKind, bool) {
	k, ok := cellNameToKind[strings.ToLower(s)]
	return k, ok
}
