package timecoder

/*------------------------------------------------------------------
 *
 * Purpose:	Per-channel zero-crossing detector with a low-pass-tracked
 *		DC baseline (spec.md §3.2, §4.3).
 *
 *------------------------------------------------------------------*/

// channelState tracks zero-crossings of one audio channel (left or
// right). It holds no reference to the decoder that owns it; the
// decoder's sample loop drives it one sample at a time.
type channelState struct {
	zero           int32 // running DC baseline, same scale as the input sample
	positive       bool
	swapped        bool // a crossing occurred on the most recent sample
	crossingTicker uint32
}

// update runs one sample through the crossing detector (spec.md §4.3).
// alpha is the one-pole low-pass coefficient (dt/(ZERO_RC+dt)); threshold
// is the hysteresis band around the tracked baseline.
func (c *channelState) update(v int32, alpha float64, threshold int32) {
	c.crossingTicker++
	c.swapped = false

	switch {
	case v > c.zero+threshold && !c.positive:
		c.positive = true
		c.swapped = true
		c.crossingTicker = 0
	case v < c.zero-threshold && c.positive:
		c.positive = false
		c.swapped = true
		c.crossingTicker = 0
	}

	// One-pole low-pass: zero += alpha * (v - zero). Intermediate math
	// (including the difference) happens in float64 so it stays accurate
	// at 32-bit full scale, then truncates back to the integer baseline.
	c.zero += int32(alpha * (float64(v) - float64(c.zero)))
}
