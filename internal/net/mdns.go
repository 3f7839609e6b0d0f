package net

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/mdns"
)

const (
	serviceType    = "_rpaint._udp"
	browseInterval = 5 * time.Second
	browseExpiry   = 16 * time.Second
)

// Discovery advertises this peer over mDNS and browses for others. Browse
// results surface through the same event contract as the transport, with
// the peer's snapshot endpoint attached so late joiners know where to fetch
// the board from. Losing discovery only loses that shortcut; datagram
// presence still works without it.
type Discovery struct {
	id       string
	snapPort int

	server *mdns.Server
	cancel context.CancelFunc
	wg     sync.WaitGroup
	inbox  chan Event
}

func NewDiscovery(id string, snapPort int) *Discovery {
	return &Discovery{
		id:       id,
		snapPort: snapPort,
		inbox:    make(chan Event, inboxSize),
	}
}

// Start registers the service and begins the browse loop.
func (d *Discovery) Start() error {
	service, err := mdns.NewMDNSService(
		d.id,        // instance name, unique per peer
		serviceType, // _rpaint._udp
		"",          // default ".local" domain
		"",          // default hostname
		d.snapPort,  // where our snapshot service answers
		nil,         // auto-detect IPs
		[]string{"id=" + d.id, fmt.Sprintf("snap=%d", d.snapPort)},
	)
	if err != nil {
		return fmt.Errorf("create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("start mDNS server: %w", err)
	}
	d.server = server

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.wg.Add(1)
	go d.browse(ctx)

	log.Printf("[mdns] advertising %s as %s", serviceType, d.id)
	return nil
}

// Stop ends the browse loop and unregisters the service.
func (d *Discovery) Stop() {
	if d.cancel != nil {
		d.cancel()
		d.wg.Wait()
	}
	if d.server != nil {
		d.server.Shutdown()
	}
}

// DrainEvents returns pending discovery events without blocking.
func (d *Discovery) DrainEvents() []Event {
	var events []Event
	for {
		select {
		case e := <-d.inbox:
			events = append(events, e)
		default:
			return events
		}
	}
}

func (d *Discovery) queue(e Event) {
	select {
	case d.inbox <- e:
	default:
	}
}

func (d *Discovery) browse(ctx context.Context) {
	defer d.wg.Done()
	seen := make(map[string]time.Time)
	ticker := time.NewTicker(browseInterval)
	defer ticker.Stop()

	for {
		d.lookupOnce(seen)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// lookupOnce runs a single blocking lookup round, emitting discovered events
// for new answers and expiring peers that stopped answering.
func (d *Discovery) lookupOnce(seen map[string]time.Time) {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			id := txtValue(e.InfoFields, "id")
			if id == "" || id == d.id {
				continue
			}
			addr := fmt.Sprintf("%s:%d", e.AddrV4, e.Port)
			if _, known := seen[id]; !known {
				d.queue(PeerDiscoveredEvent{ID: id, Addr: addr})
				log.Printf("[mdns] found peer %s at %s", id, addr)
			}
			seen[id] = time.Now()
		}
	}()

	if err := mdns.Lookup(serviceType, entries); err != nil {
		log.Printf("[mdns] lookup: %v", err)
	}
	close(entries)
	<-done

	now := time.Now()
	for id, last := range seen {
		if now.Sub(last) > browseExpiry {
			delete(seen, id)
			d.queue(PeerExpiredEvent{ID: id})
			log.Printf("[mdns] peer %s gone", id)
		}
	}
}

func txtValue(fields []string, key string) string {
	for _, f := range fields {
		if v, ok := strings.CutPrefix(f, key+"="); ok {
			return v
		}
	}
	return ""
}
