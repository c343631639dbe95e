package timecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func genU128(t *rapid.T) U128 {
	return U128FromHalves(
		rapid.Uint64().Draw(t, "hi"),
		rapid.Uint64().Draw(t, "lo"),
	)
}

func Test_U128_shift_roundtrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := genU128(t)
		n := rapid.UintRange(0, 127).Draw(t, "n")

		// Shifting left then right by the same amount clears the top n
		// bits and nothing else.
		got := v.Shl(n).Shr(n)
		want := v.And(widthMask(128 - int(n)))
		assert.Equal(t, want, got)
	})
}

func Test_U128_bit_roundtrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := genU128(t)
		i := rapid.UintRange(0, 127).Draw(t, "i")

		set := v.SetBit(i, 1)
		assert.Equal(t, uint(1), set.Bit(i))

		clear := v.SetBit(i, 0)
		assert.Equal(t, uint(0), clear.Bit(i))
	})
}

func Test_U128_widthMask(t *testing.T) {
	assert.Equal(t, U128From64(0), widthMask(0))
	assert.Equal(t, U128From64(0xf), widthMask(4))
	assert.Equal(t, U128{Hi: ^uint64(0), Lo: ^uint64(0)}, widthMask(128))
	assert.Equal(t, U128{Hi: 1, Lo: ^uint64(0)}, widthMask(65))
}

func Test_U128_parity(t *testing.T) {
	assert.Equal(t, uint(0), U128{}.Parity())
	assert.Equal(t, uint(1), U128From64(1).Parity())
	assert.Equal(t, uint(0), U128From64(3).Parity())
	assert.Equal(t, uint(1), U128FromHalves(1, 0).Parity())
}
