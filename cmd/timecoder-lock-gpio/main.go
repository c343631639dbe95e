// Command timecoder-lock-gpio drives a GPIO output line high while a
// decoder reports a locked position and low otherwise - a front-panel
// "timecode lock" LED, the DVS equivalent of direwolf's PTT-over-GPIO
// output.
package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/warthog618/go-gpiocdev"

	"github.com/wax-drive/timecoder"
)

func main() {
	var formatName string
	var chipName string
	var line int
	var sampleRate int

	pflag.StringVarP(&formatName, "format", "f", "serato_2a", "timecode format name from the catalog")
	pflag.StringVar(&chipName, "chip", "gpiochip0", "gpio chip device")
	pflag.IntVar(&line, "line", 17, "gpio line offset driven by lock state")
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

	out, err := gpiocdev.RequestLine(chipName, line, gpiocdev.AsOutput(0))
	if err != nil {
		log.Fatal("could not request gpio line", "chip", chipName, "line", line, "err", err)
	}
	defer out.Close()

	log.Info("driving lock indicator", "chip", chipName, "line", line)

	// Polls the lock state every 50ms. This tool, like
	// timecoder-monitor, expects to be pointed at a Decoder that is
	// actually being fed audio elsewhere (see timecoder-listen for the
	// capture side); it exists to show the GPIO wiring in isolation.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	wasLocked := false
	for range ticker.C {
		_, _, locked := dec.GetPosition()
		if locked == wasLocked {
			continue
		}
		wasLocked = locked
		val := 0
		if locked {
			val = 1
		}
		if err := out.SetValue(val); err != nil {
			log.Error("gpio set failed", "err", err)
		}
	}
}
