package timecoder

import "errors"

// Errors returned by the setup-time API (spec.md §7). Runtime decoding
// never fails: an unrecognized bit pattern simply resets valid_counter
// and get_position reports "unknown" via its bool/ok return.
var (
	// ErrFormatNotFound is returned by FindDefinition when name does not
	// match any catalog entry.
	ErrFormatNotFound = errors.New("timecoder: format not found")

	// ErrBuildFailed reports that a lookup table could not be allocated.
	// No code path returns it: a failed allocation in Go panics instead
	// of returning an error (see DESIGN.md).
	ErrBuildFailed = errors.New("timecoder: lookup table build failed")

	// ErrDuplicateState indicates the static catalog itself is wrong:
	// two distinct step counts produced the same LFSR state inside the
	// declared sequence length. This can only happen from a bad catalog
	// entry (non-maximal-length tap polynomial, or declared length
	// exceeding the true period) and is a programming/data error, not a
	// runtime condition - see spec.md §7.
	ErrDuplicateState = errors.New("timecoder: duplicate LFSR state within declared sequence length")

	// ErrNotBuilt is returned by Decoder construction when the supplied
	// format has no built lookup table (spec.md §6.1 precondition).
	ErrNotBuilt = errors.New("timecoder: format has no built lookup table")

	// ErrMonitorAlloc is returned by Decoder.MonitorInit when the raster
	// buffer could not be allocated. The decoder remains usable without
	// a monitor (spec.md §7).
	ErrMonitorAlloc = errors.New("timecoder: monitor allocation failed")
)
