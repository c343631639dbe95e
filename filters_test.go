package timecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ema_converges_toward_constant_input(t *testing.T) {
	var prev float64
	for i := 0; i < 200; i++ {
		ema(10.0, &prev, 0.1)
	}
	assert.InDelta(t, 10.0, prev, 1e-6)
}

func Test_ema_zero_alpha_never_moves(t *testing.T) {
	prev := 5.0
	got := ema(100.0, &prev, 0)
	assert.Equal(t, 5.0, got)
	assert.Equal(t, 5.0, prev)
}

func Test_discreteDerivative_of_constant_is_zero_after_first_sample(t *testing.T) {
	var prev float64
	first := discreteDerivative(7.0, &prev)
	assert.Equal(t, 7.0, first) // prev starts at zero, so the first delta is the value itself

	second := discreteDerivative(7.0, &prev)
	assert.Zero(t, second)
}

func Test_pitchObserver_at_rest_reports_zero(t *testing.T) {
	var p pitchObserver
	p.init(1.0 / 1000)
	for i := 0; i < 500; i++ {
		p.observe(0)
	}
	assert.Zero(t, p.speed())
}

// At nominal forward speed, a quarter-chip crossing lands on every
// sample (sampleRate == 4*resolution), so observe receives the same
// dx == 1/(4*resolution) == dt every time; speed should converge to 1.0.
func Test_pitchObserver_converges_to_nominal_forward_speed(t *testing.T) {
	var p pitchObserver
	resolution := 1000
	dt := 1.0 / (4 * float64(resolution))
	p.init(dt)

	for i := 0; i < 5000; i++ {
		p.observe(dt)
	}
	assert.InDelta(t, 1.0, p.speed(), 0.02)
}

func Test_pitchObserver_reverse_is_negative(t *testing.T) {
	var p pitchObserver
	resolution := 1000
	dt := 1.0 / (4 * float64(resolution))
	p.init(dt)

	for i := 0; i < 5000; i++ {
		p.observe(-dt)
	}
	assert.Less(t, p.speed(), 0.0)
}
