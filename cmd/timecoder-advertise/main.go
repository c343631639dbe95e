// Command timecoder-advertise announces a decoder's position-query
// endpoint over mDNS/Bonjour, grounded on the teacher's use of the same
// github.com/brutella/dnssd package to announce its KISS-over-TCP
// service (src/dns_sd.go in the teacher tree) - so a console on the same
// LAN can find a running decoder without a configured address.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

const serviceType = "_timecoder._tcp"

func main() {
	var name string
	var port int

	pflag.StringVarP(&name, "name", "n", "", "service instance name (defaults to hostname)")
	pflag.IntVarP(&port, "port", "p", 7373, "TCP port the position endpoint listens on")
	pflag.Parse()

	if name == "" {
		if host, err := os.Hostname(); err == nil {
			name = host
		} else {
			name = "timecoder"
		}
	}

	cfg := dnssd.Config{
		Name: name,
		Type: serviceType,
		Port: port,
	}

	svc, err := dnssd.NewService(cfg)
	if err != nil {
		log.Fatal("could not create mDNS service", "err", err)
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		log.Fatal("could not create mDNS responder", "err", err)
	}

	if _, err := responder.Add(svc); err != nil {
		log.Fatal("could not register mDNS service", "err", err)
	}

	log.Info("advertising position service", "name", name, "type", serviceType, "port", port)
	fmt.Printf("advertising %s.%s on port %d\n", name, serviceType, port)

	if err := responder.Respond(context.Background()); err != nil {
		log.Fatal("mDNS responder stopped", "err", err)
	}
}
