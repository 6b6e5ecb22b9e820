package types

import "testing"

var (
	sinkID  EntityID
	sinkU32 uint32
)

//go:noinline
func packEntityIDNoInline(kind uint8, gen uint32, index uint32) EntityID {
	return PackEntityID(kind, gen, index)
}

func BenchmarkPackEntityID(b *testing.B) {
	var id EntityID
	for i := 0; i < b.N; i++ {
		id = packEntityIDNoInline(2, uint32(i), uint32(i))
	}
	sinkID = id
}

func BenchmarkEntityID_Getters(b *testing.B) {
	id := packEntityIDNoInline(2, 3, 4)

	b.Run("Gen", func(b *testing.B) {
		var v uint32
		for i := 0; i < b.N; i++ {
			v = id.Generation()
		}
		sinkU32 = v
	})

	b.Run("Index", func(b *testing.B) {
		var v uint32
		for i := 0; i < b.N; i++ {
			v = id.Index()
		}
		sinkU32 = v
	})
}
