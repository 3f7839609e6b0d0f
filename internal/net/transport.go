package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lulu110106/projet-Rpaint/internal/wire"
)

// State is the transport's connection state.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	}
	return "disconnected"
}

const (
	// DefaultGroup is the multicast group every peer joins.
	DefaultGroup = "239.255.43.99:45454"

	// MaxDatagram bounds one send so frames never outgrow what a single
	// datagram can reliably carry. Oversized payloads (a full Sync of a
	// busy board) go over the snapshot channel instead.
	MaxDatagram = 60000

	senderIDLen    = 16
	readTimeout    = 200 * time.Millisecond
	errorBackoff   = time.Second
	livenessWindow = 10 * time.Second
	inboxSize      = 256
)

var (
	ErrNotConnected  = errors.New("not connected")
	ErrFrameTooLarge = errors.New("frame exceeds datagram size")
)

// Transport broadcasts encoded frames to the group and feeds decoded peer
// messages back through the event inbox. A single worker goroutine owns the
// receive socket and the peer-presence table outright; everything it learns
// crosses the goroutine boundary as events, never as shared state. The
// mutex below guards only the connection state machine.
type Transport struct {
	id    uuid.UUID
	group *net.UDPAddr
	inbox chan Event

	// liveness is how long a peer may stay silent before the sweep drops
	// it. Fixed at livenessWindow except in tests, and only before Connect.
	liveness time.Duration

	mu     sync.Mutex
	state  State
	send   *net.UDPConn
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTransport prepares a transport for the given group address without
// touching the network yet.
func NewTransport(group string) (*Transport, error) {
	addr, err := net.ResolveUDPAddr("udp4", group)
	if err != nil {
		return nil, fmt.Errorf("resolve group %q: %w", group, err)
	}
	return &Transport{
		id:       uuid.New(),
		group:    addr,
		inbox:    make(chan Event, inboxSize),
		liveness: livenessWindow,
	}, nil
}

// ID returns this peer's identity, the same one every datagram is tagged
// with.
func (t *Transport) ID() string {
	return t.id.String()
}

func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Transport) Connected() bool {
	return t.State() == Connected
}

// Connect binds the send socket, joins the group and starts the receive
// worker. Calling it while already connected is a no-op.
func (t *Transport) Connect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Disconnected {
		return nil
	}
	t.state = Connecting

	send, err := net.DialUDP("udp4", nil, t.group)
	if err != nil {
		t.state = Disconnected
		return fmt.Errorf("bind send socket: %w", err)
	}
	recv, err := net.ListenMulticastUDP("udp4", nil, t.group)
	if err != nil {
		send.Close()
		t.state = Disconnected
		return fmt.Errorf("join group %s: %w", t.group, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.send = send
	t.cancel = cancel
	t.wg.Add(1)
	go t.run(ctx, recv)

	t.state = Connected
	t.queue(ConnectedEvent{})
	log.Printf("[net] joined %s as %s", t.group, t.id)
	return nil
}

// Disconnect stops the worker, closes the sockets and forgets every peer.
// The worker is joined before the sockets close, so reconnect cycles never
// leak a goroutine.
func (t *Transport) Disconnect() {
	t.mu.Lock()
	if t.state != Connected {
		t.mu.Unlock()
		return
	}
	t.state = Disconnected
	send := t.send
	cancel := t.cancel
	t.send = nil
	t.cancel = nil
	t.mu.Unlock()

	cancel()
	t.wg.Wait()
	send.Close()
	t.queue(DisconnectedEvent{})
	log.Printf("[net] left %s", t.group)
}

// Send broadcasts one encoded frame, prefixed with the sender id so peers
// (and our own loopback) can tell who it came from. It neither blocks nor
// retries; a failure is the caller's to report once and forget.
func (t *Transport) Send(frame []byte) error {
	t.mu.Lock()
	conn := t.send
	state := t.state
	t.mu.Unlock()

	if state != Connected || conn == nil {
		return ErrNotConnected
	}
	if len(frame)+senderIDLen > MaxDatagram {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(frame))
	}

	buf := make([]byte, 0, senderIDLen+len(frame))
	buf = append(buf, t.id[:]...)
	buf = append(buf, frame...)
	if _, err := conn.Write(buf); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// DrainEvents returns every event queued since the last drain, never
// blocking.
func (t *Transport) DrainEvents() []Event {
	var events []Event
	for {
		select {
		case e := <-t.inbox:
			events = append(events, e)
		default:
			return events
		}
	}
}

// queue drops the event when the inbox is full; the channel is best-effort
// and so are we.
func (t *Transport) queue(e Event) {
	select {
	case t.inbox <- e:
	default:
	}
}

// run is the receive worker. It polls with a short read deadline, decodes
// whatever arrives, and keeps the presence table. On a real I/O error it
// logs and backs off rather than dying; the channel is lossy and the loop
// should be too.
func (t *Transport) run(ctx context.Context, conn *net.UDPConn) {
	defer t.wg.Done()
	defer conn.Close()

	buf := make([]byte, 65536)
	peers := make(map[string]time.Time)

	for {
		if ctx.Err() != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				t.sweep(peers)
				continue
			}
			if ctx.Err() != nil {
				return
			}
			log.Printf("[net] read error: %v", err)
			select {
			case <-time.After(errorBackoff):
			case <-ctx.Done():
				return
			}
			continue
		}

		if n < senderIDLen {
			continue
		}
		sender, err := uuid.FromBytes(buf[:senderIDLen])
		if err != nil || sender == t.id {
			// Garbage or our own multicast loopback.
			continue
		}

		sid := sender.String()
		if _, known := peers[sid]; !known {
			t.queue(PeerDiscoveredEvent{ID: sid})
			log.Printf("[net] peer %s is here", sid)
		}
		peers[sid] = time.Now()
		t.sweep(peers)

		msg, err := wire.Decode(buf[senderIDLen:n])
		if err != nil {
			// Malformed datagrams are dropped without ceremony.
			continue
		}
		t.queue(MessageEvent{Msg: msg, From: sid})
	}
}

// sweep expires peers that have been silent past the liveness window. This
// is a coarse presence heuristic, not a membership protocol.
func (t *Transport) sweep(peers map[string]time.Time) {
	now := time.Now()
	for id, last := range peers {
		if now.Sub(last) > t.liveness {
			delete(peers, id)
			t.queue(PeerExpiredEvent{ID: id})
			log.Printf("[net] peer %s went quiet", id)
		}
	}
}
