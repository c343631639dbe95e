package timecoder

/*------------------------------------------------------------------
 *
 * Purpose:	Forward and reverse single-step transitions of a variable
 *		width Linear Feedback Shift Register (LFSR), the sequence
 *		generator pressed onto a timecoded record or CD.
 *
 * Description:	A chip of timecode is one output bit of the LFSR; stepping
 *		it forward advances the position by one chip, stepping it
 *		backward (rev) recovers the previous position. Both
 *		directions are needed because the turntable can be spun
 *		either way at any moment - see fwd/rev in bitstream.go for
 *		where these get called from the sample pipeline.
 *
 * Reference:	Mirrors the style of a small, self-contained shift-register
 *		noise generator in the reference pack (a PSG sound chip's
 *		white-noise LFSR), generalized here to an arbitrary width up
 *		to 128 bits and both shift directions.
 *
 *------------------------------------------------------------------*/

// lfsrBit computes the parity (XOR) of x & t: the single feedback bit
// spec.md §4.1 calls lfsr(x, t).
func lfsrBit(x, t U128) uint {
	return x.And(t).Parity()
}

// fwd steps the register one chip forward. The new bit enters the MSB of
// the b-bit window, per spec.md §4.1:
//
//	fwd(x) = (x >> 1) | (lfsr(x, t|1) << (b-1))
func fwd(x U128, taps U128, b int) U128 {
	feedback := lfsrBit(x, taps.Or(bitAt(0)))
	shifted := x.Shr(1)
	return shifted.Or(bitAt(uint(b - 1)).mulBit(feedback)).And(widthMask(b))
}

// rev steps the register one chip backward, undoing fwd. The new bit
// enters the LSB, per spec.md §4.1:
//
//	rev(x) = ((x << 1) & mask) | lfsr(x, (t>>1) | (1 << (b-1)))
func rev(x U128, taps U128, b int) U128 {
	feedback := lfsrBit(x, taps.Shr(1).Or(bitAt(uint(b-1))))
	shifted := x.Shl(1).And(widthMask(b))
	return shifted.Or(U128From64(uint64(feedback)))
}

// mulBit returns a (which is expected to be a single-bit mask) if bit==1,
// or zero otherwise. Small helper to keep fwd/rev free of branching.
func (a U128) mulBit(bit uint) U128 {
	if bit == 0 {
		return U128{}
	}
	return a
}
