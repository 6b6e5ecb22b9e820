package types

import (
	"fmt"
	"strconv"
)

// EntityID - 64-битный идентификатор объекта игры.
//
// Формат битов (от старших к младшим):
//
//	[ Kind (8) | Generation (24) | Index (32) ]
//
// Kind - тип объекта (игрок, огонек), Generation - номер карты в рамках
// сессии, Index - слот в массиве симуляции. Два огонька с одним слотом на
// разных картах получают разные идентификаторы.
type EntityID uint64

// NilEntityID - аналог nil для отсутствующего объекта
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 24
	bitsKind  = 8

	shiftGen  = bitsIndex
	shiftKind = bitsIndex + bitsGen

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskKind  = (1 << bitsKind) - 1
)

// PackEntityID собирает EntityID. Поколение старше 24 бит обрезается.
func PackEntityID(kind uint8, gen uint32, index uint32) EntityID {
	return EntityID(
		(uint64(kind) << shiftKind) |
			(uint64(gen&maskGen) << shiftGen) |
			uint64(index),
	)
}

func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

func (id EntityID) Generation() uint32 {
	return uint32((id >> shiftGen) & maskGen)
}

func (id EntityID) Kind() uint8 {
	return uint8((id >> shiftKind) & maskKind)
}

func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String - для логов и отладки
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[kind=%d gen=%d idx=%d]", id.Kind(), id.Generation(), id.Index())
}

// MarshalJSON пишет id строкой: JS-клиент не умеет uint64 без потери точности.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает и строку, и число.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("entity id %q: %w", s, err)
	}
	*id = EntityID(v)
	return nil
}
