package controller

import (
	"math/rand"

	"github.com/Amarcolina/WalkManifold/common"
)

// historyCapacity is the number of samples PositionHistory retains, per
// spec.md §4.8.
const historyCapacity = 256

// Default radix/carryThreshold, per spec.md §4.8.
const (
	defaultRadix          = 20
	defaultCarryThreshold = 1
)

// PositionHistory is a fixed-length ring buffer sampling controller
// positions with a geometric bias toward the recent past, per spec.md
// §4.8: each slot carries a rollover counter so the front of the buffer
// turns over almost every push while a slot at depth d shifts on only
// about ((radix-carryThreshold)/radix)^d of pushes ((19/20)^d with the
// defaults). Recent positions dominate the front; the oldest slot changes
// rarely.
type PositionHistory struct {
	buffer   [historyCapacity]common.Vec3
	counters [historyCapacity]uint32

	radix          uint32
	carryThreshold uint32
	configured     bool

	// filled is the number of slots considered to hold a meaningful
	// sample, capped at historyCapacity. Reset jumps straight to
	// historyCapacity (spec.md: "the buffer is filled with p" on reset,
	// so every slot is immediately valid, if identical); Push alone (with
	// no preceding Reset) grows it one at a time, for callers exercising
	// the raw rollover mechanics in isolation.
	filled int
}

// Reset seeds every slot with p and re-randomizes the per-slot rollover
// counters in [0, radix) so that, across many controllers, clusters of
// slots do not all carry on the same push, per spec.md §4.8. SetParameters
// may be called beforehand to override the spec's defaults (20, 1).
func (h *PositionHistory) Reset(p common.Vec3) {
	h.ensureParameters()
	for i := range h.buffer {
		h.buffer[i] = p
		h.counters[i] = uint32(rand.Intn(int(h.radix)))
	}
	h.filled = historyCapacity
}

// SetParameters overrides the default radix/carryThreshold. Must be called
// before the first Reset/Push to take effect.
func (h *PositionHistory) SetParameters(radix, carryThreshold uint32) {
	h.radix = radix
	h.carryThreshold = carryThreshold
	h.configured = true
}

// ensureParameters applies spec.md §4.8's default radix (20) and
// carryThreshold (1) the first time this history is touched and
// SetParameters was never called, so a zero-value PositionHistory is
// usable without an explicit Reset call.
func (h *PositionHistory) ensureParameters() {
	if h.configured {
		return
	}
	h.radix = defaultRadix
	h.carryThreshold = defaultCarryThreshold
	h.configured = true
}

// Push records a new sample using the per-slot rollover walk from
// spec.md §4.8:
//
//  1. Walk slots from the front. At each slot, read its counter, advance
//     it by one mod radix, and stop walking once a slot's old counter was
//     below carryThreshold (or the walk reaches the last slot).
//  2. Shift every slot up to the one reached one position toward the end,
//     discarding what fell off the far end, and place p at index 0.
//
// The net effect: the front slot turns over on almost every push; a slot
// near the back only turns over when every counter ahead of it happens to
// carry in the same call, which is geometrically rare.
func (h *PositionHistory) Push(p common.Vec3) {
	h.ensureParameters()
	shiftCount := 0
	for i := 0; i < historyCapacity; i++ {
		was := h.counters[i]
		h.counters[i] = (was + 1) % h.radix
		if was < h.carryThreshold || i == historyCapacity-1 {
			shiftCount = i
			break
		}
	}
	for i := shiftCount; i > 0; i-- {
		h.buffer[i] = h.buffer[i-1]
	}
	h.buffer[0] = p
	if h.filled < historyCapacity {
		h.filled++
	}
}

// Len returns the number of samples considered valid since the last
// Reset/first Push, capped at historyCapacity.
func (h *PositionHistory) Len() int { return h.filled }

// At returns the i'th most recent sample (0 is the latest). Panics if
// i >= Len().
func (h *PositionHistory) At(i int) common.Vec3 {
	if i < 0 || i >= h.filled {
		panic("controller: PositionHistory.At index out of range")
	}
	return h.buffer[i]
}

// AtFromOldest returns the i'th sample counting from the oldest sample
// still held (0 is the oldest), for the controller's oldest-to-newest
// fallback scan in spec.md §4.8 step 6. Panics if i >= Len().
func (h *PositionHistory) AtFromOldest(i int) common.Vec3 {
	if i < 0 || i >= h.filled {
		panic("controller: PositionHistory.AtFromOldest index out of range")
	}
	return h.buffer[h.filled-1-i]
}

// Oldest returns the least recent sample still held, or the zero value and
// false if the history is empty.
func (h *PositionHistory) Oldest() (common.Vec3, bool) {
	if h.filled == 0 {
		return common.Vec3{}, false
	}
	return h.AtFromOldest(0), true
}
