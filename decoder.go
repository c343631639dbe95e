package timecoder

/*------------------------------------------------------------------
 *
 * Purpose:	Top-level decoder: owns the two channel trackers, the pitch
 *		observer, the optional offset-modulation path, the
 *		bitstream assembler and the monitor raster, and drives all
 *		of them one stereo sample at a time (spec.md §3.3, §4.4).
 *
 *------------------------------------------------------------------*/

// zeroRC is the RC time constant (seconds) of the baseline tracker
// (spec.md §6.5: ZERO_RC).
const zeroRC = 0.001

// zeroThreshold is the crossing hysteresis band at full (non-phono)
// input level (spec.md §6.5: ZERO_THRESHOLD = 128 << 16).
const zeroThreshold = 128 << 16

// offsetModAlpha is the EMA coefficient applied before the discrete
// derivative in the offset-modulation demod path (spec.md §4.4 step 3).
const offsetModAlpha = 0.3

// TimecoderChannels is the number of interleaved PCM channels this
// decoder expects: stereo (spec.md §6.3/§6.5: TIMECODER_CHANNELS).
const TimecoderChannels = 2

// Decoder is one instance of the timecode decoder core: construct it
// bound to a built Format, then feed it PCM with Submit and read its
// state back with GetPosition. A single Decoder must not be used from
// more than one goroutine concurrently (spec.md §5); independent Decoders
// may run on independent goroutines freely, since all shared state (the
// catalog and its LUTs) is read-only after build.
type Decoder struct {
	format     *Format
	sampleRate int
	dt         float64
	speed      float64
	zeroAlpha  float64
	threshold  int32
	phono      bool

	primary   channelState
	secondary channelState
	pitch     pitchObserver
	forwards  bool

	bs             *bitstream
	timecodeTicker uint32

	// Offset-modulation demod path state (spec.md §9 Open Questions:
	// moved from process-wide externs to per-decoder fields).
	emaPrimaryOld   float64
	emaSecondaryOld float64
	primaryOld      float64
	secondaryOld    float64

	// Monitor-only derivative state, independent of the demod path's.
	leftOld  float64
	rightOld float64

	mon *monitor
}

// NewDecoder constructs a decoder bound to format, which must already
// have a built lookup table (spec.md §6.1 precondition). speed is the
// nominal playback speed (1.0 for normal speed); sampleRate is the PCM
// sample rate in Hz. phono selects the lower crossing threshold used for
// low-level ("phono", as opposed to line level) turntable preamp input.
func NewDecoder(format *Format, speed float64, sampleRate int, phono bool) (*Decoder, error) {
	if !format.Built() {
		return nil, ErrNotBuilt
	}

	dt := 1.0 / float64(sampleRate)
	threshold := int32(zeroThreshold)
	if phono {
		threshold >>= 5
	}

	d := &Decoder{
		format:     format,
		sampleRate: sampleRate,
		dt:         dt,
		speed:      speed,
		zeroAlpha:  dt / (zeroRC + dt),
		threshold:  threshold,
		phono:      phono,
		bs:         newBitstream(format),
	}
	d.primary.zero = 0
	d.secondary.zero = 0
	d.pitch.init(dt)
	return d, nil
}

// Submit feeds frames stereo samples (2*frames int16 values, interleaved)
// through the decoder's sample pipeline (spec.md §4.4). It never
// allocates and never blocks: the hot-path contract from spec.md §5.
func (d *Decoder) Submit(pcm []int16, frames int) {
	f := d.format
	offsetMod := f.Flags.has(OffsetModulation)
	switchPrimary := f.Flags.has(SwitchPrimary)
	switchPhase := f.Flags.has(SwitchPhase)
	polarityWant := !f.Flags.has(SwitchPolarity)

	for i := 0; i < frames; i++ {
		left := int32(pcm[2*i]) << 16
		right := int32(pcm[2*i+1]) << 16

		var primarySample, secondarySample int32
		if switchPrimary {
			primarySample, secondarySample = left, right
		} else {
			primarySample, secondarySample = right, left
		}

		feedPrimary, feedSecondary := primarySample, secondarySample
		if offsetMod {
			emaP := ema(float64(primarySample), &d.emaPrimaryOld, offsetModAlpha)
			emaS := ema(float64(secondarySample), &d.emaSecondaryOld, offsetModAlpha)
			feedPrimary = int32(discreteDerivative(emaP, &d.primaryOld))
			feedSecondary = int32(discreteDerivative(emaS, &d.secondaryOld))
		}

		d.primary.update(feedPrimary, d.zeroAlpha, d.threshold)
		d.secondary.update(feedSecondary, d.zeroAlpha, d.threshold)

		if d.primary.swapped || d.secondary.swapped {
			var forwards bool
			if d.primary.swapped {
				forwards = d.primary.positive != d.secondary.positive
			} else {
				forwards = d.primary.positive == d.secondary.positive
			}
			if switchPhase {
				forwards = !forwards
			}
			if forwards != d.forwards {
				d.bs.valid = 0
			}
			d.forwards = forwards
		}

		if !d.primary.swapped && !d.secondary.swapped {
			d.pitch.observe(0)
		} else {
			dx := 1.0 / (4 * float64(f.Resolution))
			if !d.forwards {
				dx = -dx
			}
			d.pitch.observe(dx)
		}

		d.timecodeTicker++
		if d.secondary.swapped && d.primary.positive == polarityWant {
			m := absInt32(primarySample/2 - d.primary.zero/2)
			d.bs.decode(m, d.forwards)
			d.timecodeTicker = 0
		}

		if d.mon != nil {
			var x, y float64
			if offsetMod {
				const monitorDerivScale = 1.25
				x = discreteDerivative(float64(left), &d.leftOld) * monitorDerivScale
				y = discreteDerivative(float64(right), &d.rightOld) * monitorDerivScale
			} else {
				x, y = float64(left), float64(right)
			}
			d.mon.tick(x, y, d.bs.ref)
		}
	}
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// GetPosition returns the decoded position (in chips) and the time in
// seconds since it was last updated, or ok=false unless more than
// validBits consecutive bits have matched the predicted LFSR state, or
// the current bitstream register isn't present in the format's lookup
// table (spec.md §4.7).
func (d *Decoder) GetPosition() (position int64, secondsSinceStamp float64, ok bool) {
	if !d.bs.locked() {
		return 0, 0, false
	}
	pos, found := d.format.LUT().lookup(d.bs.frame)
	if !found {
		return 0, 0, false
	}
	return pos, float64(d.timecodeTicker) * d.dt, true
}

// Forwards reports the current decoded direction of motion.
func (d *Decoder) Forwards() bool {
	return d.forwards
}

// Pitch returns the smoothed instantaneous playback rate as a multiple of
// nominal speed (1.0 forward at nominal speed, -1.0 reverse at nominal,
// 0 at rest).
func (d *Decoder) Pitch() float64 {
	return d.pitch.speed()
}

// Format returns the format this decoder is currently bound to.
func (d *Decoder) Format() *Format {
	return d.format
}

// CycleDefinition advances to the next catalog entry with a built lookup
// table (wrapping around), resetting valid_counter and timecode_ticker
// (spec.md §4.8). If no other format has a built LUT, the decoder keeps
// its current format.
func (d *Decoder) CycleDefinition() {
	idx := -1
	for i, f := range Catalog {
		if f == d.format {
			idx = i
			break
		}
	}

	for step := 1; step <= len(Catalog); step++ {
		next := Catalog[(idx+step)%len(Catalog)]
		if next.Built() {
			d.format = next
			d.bs = newBitstream(next)
			d.timecodeTicker = 0
			d.pitch.init(d.dt)
			return
		}
	}
}

// MonitorInit allocates a size x size scope raster (spec.md §4.6,
// §6.1). Returns ErrMonitorAlloc on failure; the decoder remains usable
// for position decoding without a monitor either way.
func (d *Decoder) MonitorInit(size int) error {
	m, err := newMonitor(size)
	if err != nil {
		return err
	}
	d.mon = m
	return nil
}

// MonitorClear zeroes the scope raster in place, if one is allocated.
func (d *Decoder) MonitorClear() {
	if d.mon != nil {
		d.mon.clear()
	}
}

// Monitor returns the raw raster buffer and its side length, or (nil, 0)
// if no monitor has been initialized. The returned slice must not be
// mutated by the caller.
func (d *Decoder) Monitor() ([]byte, int) {
	if d.mon == nil {
		return nil, 0
	}
	return d.mon.Bytes(), d.mon.Size()
}

// RefLevel exposes the current tracked envelope amplitude, mostly useful
// for diagnostics/tests; spec.md §3.3 requires it stay positive whenever
// the monitor is updated.
func (d *Decoder) RefLevel() int32 {
	return d.bs.ref
}

// ValidCounter exposes the consecutive-matching-bit count, for
// diagnostics/tests only.
func (d *Decoder) ValidCounter() uint32 {
	return d.bs.valid
}
