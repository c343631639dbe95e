// Command timecoder-monitor renders the decoder's scope raster as an
// ASCII x-y plot directly in a raw terminal, redrawing in place - the
// text-console equivalent of the GUI scope the decoder core itself never
// implements (spec.md §1: rendering is external).
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/term"
	"github.com/spf13/pflag"

	"github.com/wax-drive/timecoder"
)

func main() {
	var formatName string
	var size int
	var sampleRate int

	pflag.StringVarP(&formatName, "format", "f", "serato_2a", "timecode format name from the catalog")
	pflag.IntVarP(&size, "size", "s", 41, "raster side length in pixels (odd numbers center nicely)")
	pflag.IntVarP(&sampleRate, "rate", "r", 44100, "capture sample rate")
	pflag.Parse()

	format, err := timecoder.FindDefinition(formatName)
	if err != nil {
		log.Fatal("format lookup failed", "format", formatName, "err", err)
	}

	dec, err := timecoder.NewDecoder(format, 1.0, sampleRate, false)
	if err != nil {
		log.Fatal("decoder construction failed", "err", err)
	}
	if err := dec.MonitorInit(size); err != nil {
		log.Fatal("monitor init failed", "err", err)
	}

	tty, err := term.Open("/dev/tty")
	if err != nil {
		log.Fatal("could not open controlling terminal", "err", err)
	}
	defer tty.Restore()
	if err := term.RawMode(tty); err != nil {
		log.Fatal("could not switch terminal to raw mode", "err", err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	// No live audio source here - this tool is meant to be pointed at a
	// Decoder fed by something else in-process (or extended to open its
	// own capture stream, as timecoder-listen does). Redraw on a timer so
	// the raster's own decay is visible even with a static/no input.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		pixels, side := dec.Monitor()
		if side == 0 {
			continue
		}
		fmt.Fprint(out, "\033[H\033[2J")
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				if pixels[y*side+x] > 0x40 {
					fmt.Fprint(out, "#")
				} else {
					fmt.Fprint(out, " ")
				}
			}
			fmt.Fprint(out, "\r\n")
		}
		out.Flush()
	}
}
