// Command timecoder-listen opens a stereo capture stream with PortAudio
// and feeds it straight into a timecoder.Decoder, printing the decoded
// position whenever it changes lock state. It is the thinnest possible
// host application around the core package: all the device handling
// spec.md §1 explicitly keeps out of the decoder core lives here.
package main

/*------------------------------------------------------------------
 *
 * Purpose:	Capture harness for the timecode decoder: open the sound
 *		card, call Decoder.Submit per block, print position.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/wax-drive/timecoder"
	"github.com/wax-drive/timecoder/internal/config"
)

func main() {
	var configPath string
	var formatName string
	var framesPerBuffer int

	pflag.StringVarP(&configPath, "config", "c", "", "path to YAML config file (optional; defaults apply otherwise)")
	pflag.StringVarP(&formatName, "format", "f", "serato_2a", "timecode format name from the catalog")
	pflag.IntVarP(&framesPerBuffer, "frames", "n", 512, "frames per capture block")
	pflag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatal("config load failed", "err", err)
		}
		cfg = loaded
	}

	format, err := timecoder.FindDefinition(formatName)
	if err != nil {
		log.Fatal("format lookup failed", "format", formatName, "err", err)
	}

	dec, err := timecoder.NewDecoder(format, cfg.Speed, cfg.SampleRate, cfg.Phono)
	if err != nil {
		log.Fatal("decoder construction failed", "err", err)
	}

	if err := portaudio.Initialize(); err != nil {
		log.Fatal("portaudio init failed", "err", err)
	}
	defer portaudio.Terminate()

	buf := make([]int16, framesPerBuffer*timecoder.TimecoderChannels)
	stream, err := portaudio.OpenDefaultStream(timecoder.TimecoderChannels, 0, float64(cfg.SampleRate), framesPerBuffer, buf)
	if err != nil {
		log.Fatal("could not open capture stream", "err", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		log.Fatal("could not start capture stream", "err", err)
	}
	defer stream.Stop()

	log.Info("listening", "format", format.Name, "sample_rate", cfg.SampleRate, "phono", cfg.Phono)

	wasLocked := false
	for {
		if err := stream.Read(); err != nil {
			log.Error("capture read failed", "err", err)
			continue
		}
		dec.Submit(buf, framesPerBuffer)

		pos, age, locked := dec.GetPosition()
		if locked != wasLocked {
			stamp, fmtErr := strftime.Format(cfg.LogTimeFormat, time.Now())
			if fmtErr != nil {
				stamp = time.Now().Format(time.RFC3339)
			}
			if locked {
				fmt.Fprintf(os.Stdout, "%s  locked  pos=%d age=%.3fs pitch=%.3f\n", stamp, pos, age, dec.Pitch())
			} else {
				fmt.Fprintf(os.Stdout, "%s  lost lock\n", stamp)
			}
			wasLocked = locked
		}
	}
}
