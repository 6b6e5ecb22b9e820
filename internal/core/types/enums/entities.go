package enums

// EntityKind - старший байт types.EntityID
type EntityKind uint8

const (
	EntityKindUnknown EntityKind = iota
	EntityKindPlayer
	EntityKindWisp
)

var entityKindToString = map[EntityKind]string{
	EntityKindPlayer: "PLAYER",
	EntityKindWisp:   "WISP",
}

func (e EntityKind) String() string {
	if val, ok := entityKindToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}
