package domain

import "errors"

var (
	// ErrNoStartCell - на карте нет ни одной проходимой клетки для старта игрока.
	// Вызывающая сторона должна перегенерировать карту.
	ErrNoStartCell = errors.New("no passable start cell")

	ErrOutOfBounds = errors.New("out of bounds")
)
