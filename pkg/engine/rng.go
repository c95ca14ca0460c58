package engine

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
)

// DecisionStream returns the deterministic RNG stream for one NPC's
// decision in one tick. The seed derives from (session seed, tick,
// npc id) through FNV-64a, so a decision consumes the same draws no
// matter which goroutine runs it or in what order — the property the
// two-phase tick relies on for reproducibility.
func DecisionStream(sessionSeed, tick uint64, npcID string) *rand.Rand {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], sessionSeed)
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], tick)
	h.Write(buf[:])
	h.Write([]byte(npcID))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
