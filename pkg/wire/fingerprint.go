package wire

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"lukechampine.com/blake3"
)

// Fingerprint returns a hex digest of everything observable about a graph:
// vertex positions, ownership, pins, labels and clusters, and edge endpoints
// with their metadata. Two graphs with equal fingerprints are equal for every
// purpose the engine cares about, which makes it a cheap idempotence check
// and a stable cache key for rendered output.
func Fingerprint(g View) string {
	h := blake3.New(32, nil)
	var buf [8]byte
	u64 := func(x uint64) {
		binary.LittleEndian.PutUint64(buf[:], x)
		h.Write(buf[:])
	}
	str := func(s string) {
		u64(uint64(len(s)))
		h.Write([]byte(s))
	}

	u64(uint64(g.VertexCount()))
	for _, v := range g.Vertices() {
		u64(uint64(v.ID))
		u64(math.Float64bits(v.Point.X))
		u64(math.Float64bits(v.Point.Y))
		u64(uint64(v.Owner))
		str(v.Pin.Component)
		str(v.Pin.Pin)
		str(v.Label)
		u64(uint64(v.Cluster))
	}
	u64(uint64(g.EdgeCount()))
	for _, e := range g.Edges() {
		u64(uint64(e.ID))
		u64(uint64(e.Start))
		u64(uint64(e.End))
		str(e.Meta.Layer)
		u64(math.Float64bits(e.Meta.Width))
	}
	return hex.EncodeToString(h.Sum(nil))
}
