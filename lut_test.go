package timecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallLUTFormat builds a tiny, fully-verifiable synthetic format instead
// of exercising the real catalog's multi-hundred-thousand-state entries
// in every test run.
func smallLUTFormat() *Format {
	return &Format{
		Name: "synthetic_small", Bits: 8,
		Seed: U128From64(1), Taps: U128From64(smallMaximalTaps),
		Length: 255,
	}
}

func Test_buildLUT_every_state_is_findable(t *testing.T) {
	f := smallLUTFormat()
	table, err := buildLUT(f)
	require.NoError(t, err)

	x := f.Seed
	for i := int64(0); i < f.Length; i++ {
		pos, found := table.lookup(x)
		require.Truef(t, found, "state %v (step %d) missing from table", x, i)
		assert.Equal(t, i, pos)
		x = fwd(x, f.Taps, f.Bits)
	}
}

func Test_buildLUT_absent_state_not_found(t *testing.T) {
	f := smallLUTFormat()
	table, err := buildLUT(f)
	require.NoError(t, err)

	// 0 is never emitted by this LFSR from seed 1 over its whole period.
	_, found := table.lookup(U128From64(0))
	assert.False(t, found)
}

func Test_buildLUT_duplicate_state_is_rejected(t *testing.T) {
	f := smallLUTFormat()
	f.Length = 256 // one step past the true period of 255: state repeats

	_, err := buildLUT(f)
	assert.ErrorIs(t, err, ErrDuplicateState)
}

func Test_nextPow2(t *testing.T) {
	assert.Equal(t, uint64(1), nextPow2(0))
	assert.Equal(t, uint64(16), nextPow2(9))
	assert.Equal(t, uint64(16), nextPow2(16))
	assert.Equal(t, uint64(32), nextPow2(17))
}
