package timecoder

/*------------------------------------------------------------------
 *
 * Purpose:	Small stateful filter collaborators used by the decoder's
 *		sample pipeline: a single-pole EMA, a discrete derivative,
 *		and the pitch observer built on top of them (spec.md §6.2).
 *
 * Description: spec.md treats these as externally supplied collaborators
 *		with a stated contract and puts their internals out of
 *		scope for the decoder spec itself. Nothing else in this
 *		module provides them, so they're implemented here to the
 *		letter of that contract and kept deliberately simple - this
 *		is the one place spec.md explicitly invites a minimal,
 *		allocation-free implementation rather than a full design.
 *
 *------------------------------------------------------------------*/

// ema is a single-pole exponential moving average: y = a*x + (1-a)*prev.
// prev is owned by the caller (per spec.md §6.2, "scalar state owned by
// caller") so it composes into larger structs with no extra allocation.
func ema(x float64, prev *float64, alpha float64) float64 {
	y := alpha*x + (1-alpha)*(*prev)
	*prev = y
	return y
}

// discreteDerivative returns x - prev and updates prev, per spec.md §6.2.
func discreteDerivative(x float64, prev *float64) float64 {
	d := x - *prev
	*prev = x
	return d
}

// pitchAlpha sets the time constant of the pitch observer's smoothing:
// short enough to follow a scratch reversing direction many times a
// second, long enough to not chase per-sample noise.
const pitchAlpha = 0.05

// pitchObserver accumulates per-sample displacements into a smoothed
// playback rate, in multiples of nominal speed (1.0 == nominal). It is the
// "pitch" collaborator spec.md §6.2 describes: init(dt), observe(dx).
//
// observe's caller (decoder.go) already expresses dx in units of nominal
// speed-seconds per sample (±1/(4*resolution) at each quarter-chip
// crossing, zero otherwise, which sums to exactly 1.0 per second of
// nominal forward motion) - speed only has to undo the per-sample EMA
// smoothing and the dt timebase, not reintroduce resolution.
type pitchObserver struct {
	dt   float64
	rate float64 // smoothed displacement per sample, in nominal-speed units
}

func (p *pitchObserver) init(dt float64) {
	p.dt = dt
	p.rate = 0
}

// observe folds in one sample's worth of displacement (spec.md §4.4 step 6
// supplies 0 or ±1/(4*resolution) per sample).
func (p *pitchObserver) observe(dx float64) {
	p.rate = pitchAlpha*dx + (1-pitchAlpha)*p.rate
}

// speed returns the smoothed instantaneous playback rate as a multiple of
// nominal speed: 1.0 forward at nominal, -1.0 reverse at nominal, 0 at
// rest.
func (p *pitchObserver) speed() float64 {
	if p.dt == 0 {
		return 0
	}
	return p.rate / p.dt
}
