package timecoder

/*------------------------------------------------------------------
 *
 * Purpose:	Reverse lookup from LFSR state to ordinal position in the
 *		sequence: a 128-bit key to int64 map, sized and built once
 *		per format and shared read-only across every decoder using
 *		that format (spec.md §3.4, §9 "Shared LUTs across decoders").
 *
 * Description: A linear-probing open-addressed table sized to at least
 *		twice the sequence length, as spec.md §9 suggests. Built
 *		write-once at FindDefinition time; read-only and lock-free
 *		after that (spec.md §5).
 *
 *------------------------------------------------------------------*/

const lutNotPresent = -1

// lut is the write-once, read-many reverse lookup table for one format.
type lut struct {
	keys  []U128
	vals  []int64 // lutNotPresent marks an empty slot
	mask  uint64  // len(keys)-1; len(keys) is always a power of two
	count int64
}

// hash128 mixes both halves of a U128 into a single 64-bit scatter value.
// Doesn't need to be cryptographic - just cheap and well distributed
// across a power-of-two table, same bar as any other open-addressed hash
// table.
func hash128(k U128) uint64 {
	h := k.Lo*0x9E3779B97F4A7C15 + k.Hi*0xC2B2AE3D27D4EB4F
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	return h
}

func nextPow2(n int64) uint64 {
	p := uint64(1)
	for p < uint64(n) {
		p <<= 1
	}
	return p
}

// newLUT allocates a table sized for at least `length` entries at a load
// factor of 50% (spec.md §9: "sized to ≥ 2·length").
func newLUT(length int64) *lut {
	size := nextPow2(length * 2)
	if size < 16 {
		size = 16
	}
	keys := make([]U128, size)
	vals := make([]int64, size)
	for i := range vals {
		vals[i] = lutNotPresent
	}
	return &lut{keys: keys, vals: vals, mask: size - 1}
}

// insert adds key -> pos, returning ErrDuplicateState if key is already
// present (spec.md §4.2: "Before inserting each state, assert it is not
// already present").
func (t *lut) insert(key U128, pos int64) error {
	idx := hash128(key) & t.mask
	for {
		if t.vals[idx] == lutNotPresent {
			t.keys[idx] = key
			t.vals[idx] = pos
			t.count++
			return nil
		}
		if t.keys[idx].Eq(key) {
			return ErrDuplicateState
		}
		idx = (idx + 1) & t.mask
	}
}

// lookup returns (position, true) if key is present, or (0, false)
// otherwise - the "sentinel not present" value from spec.md §3.4.
func (t *lut) lookup(key U128) (int64, bool) {
	idx := hash128(key) & t.mask
	for {
		if t.vals[idx] == lutNotPresent {
			return 0, false
		}
		if t.keys[idx].Eq(key) {
			return t.vals[idx], true
		}
		idx = (idx + 1) & t.mask
	}
}

// buildLUT walks `length` forward steps from `seed`, inserting every
// state. Building failure (here: a duplicate state, since this
// implementation never runs out of memory in a way Go can recover from)
// surfaces as ErrDuplicateState per spec.md §4.2/§7; the format is left
// not-built.
func buildLUT(f *Format) (*lut, error) {
	table := newLUT(f.Length)
	x := f.Seed
	for i := int64(0); i < f.Length; i++ {
		if err := table.insert(x, i); err != nil {
			return nil, err
		}
		x = fwd(x, f.Taps, f.Bits)
	}
	return table, nil
}
