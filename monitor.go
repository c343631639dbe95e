package timecoder

/*------------------------------------------------------------------
 *
 * Purpose:	Opaque x-y scope raster for visual diagnosis of the incoming
 *		signal (spec.md §3.3, §4.6). Rendering itself is external;
 *		this just maintains the byte buffer the host paints.
 *
 *------------------------------------------------------------------*/

// monitorDecayEvery is the sample interval at which the raster ages out
// (spec.md §6.5: MONITOR_DECAY_EVERY).
const monitorDecayEvery = 512

// monitor is a square byte raster: pixel intensity fades over time unless
// repeatedly re-plotted, giving a persistence-of-vision scope trace.
type monitor struct {
	size    int
	pixels  []byte
	counter uint32
}

func newMonitor(size int) (*monitor, error) {
	if size <= 0 {
		return nil, ErrMonitorAlloc
	}
	return &monitor{
		size:   size,
		pixels: make([]byte, size*size),
	}, nil
}

func (m *monitor) clear() {
	for i := range m.pixels {
		m.pixels[i] = 0
	}
	m.counter = 0
}

// tick ages the raster every monitorDecayEvery samples, then plots one
// (x, y) point scaled by the current envelope estimate refLevel, per
// spec.md §4.6. x and y are whatever signal the caller wants plotted -
// raw left/right normally, or the offset-modulation discrete derivatives
// scaled by 1.25 for MK2-style formats, per spec.md §4.6.
func (m *monitor) tick(x, y float64, refLevel int32) {
	m.counter++
	if m.counter%monitorDecayEvery == 0 {
		for i, v := range m.pixels {
			m.pixels[i] = byte((int(v) * 7) / 8)
		}
	}

	if refLevel <= 0 {
		return
	}

	scale := float64(m.size) / float64(refLevel) / 8
	px := m.size/2 + int(x*scale)
	py := m.size/2 + int(y*scale)

	if px < 0 || px >= m.size || py < 0 || py >= m.size {
		return
	}
	m.pixels[py*m.size+px] = 0xff
}

// Bytes returns the raw raster, row-major, size*size bytes. Callers must
// not mutate it; it is shared with the decoder's hot path.
func (m *monitor) Bytes() []byte {
	return m.pixels
}

// Size returns the raster's side length in pixels.
func (m *monitor) Size() int {
	return m.size
}
