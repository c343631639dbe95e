package timecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_newMonitor_rejects_nonpositive_size(t *testing.T) {
	m, err := newMonitor(0)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrMonitorAlloc)

	m, err = newMonitor(-1)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrMonitorAlloc)
}

func Test_monitor_tick_plots_a_point_and_clear_wipes_it(t *testing.T) {
	m, err := newMonitor(64)
	require.NoError(t, err)

	m.tick(0, 0, 1000)
	assertAnyNonZero(t, m.Bytes())

	m.clear()
	for _, b := range m.Bytes() {
		assert.Zero(t, b)
	}
}

func Test_monitor_tick_ignores_nonpositive_refLevel(t *testing.T) {
	m, err := newMonitor(64)
	require.NoError(t, err)

	m.tick(10, 10, 0)
	for _, b := range m.Bytes() {
		assert.Zero(t, b)
	}
}

func Test_monitor_decays_after_monitorDecayEvery_samples(t *testing.T) {
	m, err := newMonitor(64)
	require.NoError(t, err)

	m.tick(0, 0, 1000)
	before := copyBytes(m.Bytes())

	for i := 0; i < monitorDecayEvery-1; i++ {
		m.tick(1e9, 1e9, 1000) // out of bounds: doesn't re-plot, only ages
	}

	after := m.Bytes()
	sumBefore, sumAfter := 0, 0
	for i := range before {
		sumBefore += int(before[i])
		sumAfter += int(after[i])
	}
	assert.Less(t, sumAfter, sumBefore, "raster should have decayed by the time the counter wraps")
}

func Test_monitor_Size_reports_constructed_size(t *testing.T) {
	m, err := newMonitor(32)
	require.NoError(t, err)
	assert.Equal(t, 32, m.Size())
	assert.Len(t, m.Bytes(), 32*32)
}

func assertAnyNonZero(t *testing.T, b []byte) {
	t.Helper()
	for _, v := range b {
		if v != 0 {
			return
		}
	}
	t.Fatal("expected at least one nonzero byte")
}

func copyBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
