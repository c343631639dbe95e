package timecoder

/*------------------------------------------------------------------
 *
 * Purpose:	Assembles one LFSR chip's worth of decoded bit per secondary
 *		channel crossing taken while the primary channel is in its
 *		decoding half-cycle, shifts it into the rolling bitstream
 *		register, and scores it against the LFSR-predicted next
 *		state (spec.md §4.5).
 *
 *------------------------------------------------------------------*/

// refPeaksAvg is the exponential averaging window (in cycles) for the
// envelope/reference-level tracker (spec.md §6.5: REF_PEAKS_AVG).
const refPeaksAvg = 48

// validBits is the number of consecutive matching bits required before
// get_position reports a locked position (spec.md §6.5: VALID_BITS).
const validBits = 24

// bitstream holds the direction-aware shift registers and envelope state
// that spec.md §3.3 calls bitstream, timecode, valid_counter and
// ref_level, plus the format parameters needed to step them.
type bitstream struct {
	bits  int
	taps  U128
	mask  U128
	seed  U128
	frame U128 // "bitstream": the register built directly from decoded bits
	tc    U128 // "timecode": the LFSR-predicted register
	valid uint32
	ref   int32 // envelope estimate; always > 0 once decoding has started
}

func newBitstream(f *Format) *bitstream {
	return &bitstream{
		bits:  f.Bits,
		taps:  f.Taps,
		mask:  widthMask(f.Bits),
		seed:  f.Seed,
		frame: f.Seed,
		tc:    f.Seed,
		ref:   1<<31 - 1, // INT32_MAX, per spec.md §3.3
	}
}

func (b *bitstream) reset() {
	b.frame = b.seed
	b.tc = b.seed
	b.valid = 0
}

// decode runs one chip through the assembler: m is the half-scale
// amplitude sample from spec.md §4.5 ("m = |primary/2 - primary.zero/2|"),
// forwards is the current direction of motion.
//
// Returns the decoded bit, purely so callers/tests can observe it; all
// the state mutation the spec calls for happens here.
func (b *bitstream) decode(m int32, forwards bool) uint {
	bit := uint(0)
	if m > b.ref {
		bit = 1
	}

	if forwards {
		b.tc = fwd(b.tc, b.taps, b.bits)
		b.frame = b.frame.Shr(1).Or(bitAt(uint(b.bits - 1)).mulBit(bit)).And(b.mask)
	} else {
		b.tc = rev(b.tc, b.taps, b.bits)
		b.frame = b.frame.Shl(1).And(b.mask).Or(U128From64(uint64(bit)))
	}

	if b.tc.Eq(b.frame) {
		b.valid++
	} else {
		// Resync: the predicted and observed registers disagree, so
		// trust what was actually observed and start the match count
		// over (spec.md §4.5).
		b.tc = b.frame
		b.valid = 0
	}

	// Exponential average over refPeaksAvg cycles (spec.md §4.5).
	b.ref = b.ref - b.ref/refPeaksAvg + m/refPeaksAvg

	return bit
}

// locked reports whether enough consecutive bits have matched the
// predicted LFSR state to trust the current position (spec.md §4.7).
func (b *bitstream) locked() bool {
	return b.valid > validBits
}
