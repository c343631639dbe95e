// Command timecoder-watch watches udev for USB audio interface
// attach/detach events, so a host application can know when a turntable
// interface appears or disappears and re-open its capture stream -
// grounded on the teacher's use of github.com/jochenvg/go-udev for
// detecting attached GPS/serial devices, repointed here at the "sound"
// subsystem instead.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jochenvg/go-udev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	u := udev.Udev{}
	mon := u.NewMonitorFromNetlink("udev")
	if err := mon.FilterAddMatchSubsystem("sound"); err != nil {
		log.Fatal("could not filter udev monitor", "err", err)
	}

	devCh, errCh, err := mon.DeviceChan(ctx)
	if err != nil {
		log.Fatal("could not start udev monitor", "err", err)
	}

	log.Info("watching for sound-card hotplug events")

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			log.Error("udev monitor error", "err", err)
		case dev := <-devCh:
			if dev == nil {
				continue
			}
			log.Info("sound device event",
				"action", dev.Action(),
				"syspath", dev.Syspath(),
				"devnode", dev.Devnode(),
			)
		}
	}
}
