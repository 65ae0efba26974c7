package api

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
)

// Poller periodically asks the device to report all light states so the
// session's state table stays fresh even when the firmware never pushes
// updates on its own.
type Poller struct {
	controller device.Controller
	interval   time.Duration
}

// NewPoller creates a poller with the given refresh interval.
func NewPoller(controller device.Controller, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{controller: controller, interval: interval}
}

// Run sends STATUS requests until the context is cancelled. Ticks while
// disconnected are skipped rather than buffered.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Debug().Dur("interval", p.interval).Msg("status poller started")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("status poller stopped")
			return
		case <-ticker.C:
			if !p.controller.IsConnected() {
				continue
			}
			if !p.controller.Send(device.QueryStatus()) {
				log.Debug().Msg("status poll skipped, connection dropped")
			}
		}
	}
}
