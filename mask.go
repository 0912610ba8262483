package enrs

import "math/bits"

// bitmask256 represents a set of up to 256 component type bits. The
// Registry keeps one per entity index so entity destruction only has to
// visit the pools that actually hold the entity.
type bitmask256 [4]uint64

func (m *bitmask256) set(bit ComponentID) {
	i := bit / 64
	o := bit % 64
	m[i] |= 1 << o
}

func (m *bitmask256) unset(bit ComponentID) {
	i := bit / 64
	o := bit % 64
	m[i] &= ^(uint64(1) << o)
}

func (m bitmask256) has(bit ComponentID) bool {
	i := bit / 64
	o := bit % 64
	return m[i]&(1<<o) != 0
}

// contains checks if all bits in sub are set in m.
func (m bitmask256) contains(sub bitmask256) bool {
	return (m[0]&sub[0]) == sub[0] &&
		(m[1]&sub[1]) == sub[1] &&
		(m[2]&sub[2]) == sub[2] &&
		(m[3]&sub[3]) == sub[3]
}

// intersects checks if this bitmask has any bits in common with other.
func (m bitmask256) intersects(other bitmask256) bool {
	return (m[0]&other[0] != 0) ||
		(m[1]&other[1] != 0) ||
		(m[2]&other[2] != 0) ||
		(m[3]&other[3] != 0)
}

// forEach calls fn for every set bit in ascending order.
func (m bitmask256) forEach(fn func(ComponentID)) {
	for w := 0; w < 4; w++ {
		word := m[w]
		for word != 0 {
			o := bits.TrailingZeros64(word)
			fn(ComponentID(w*64 + o))
			word &= word - 1
		}
	}
}
