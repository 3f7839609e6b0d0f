package net

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Lulu110106/projet-Rpaint/internal/wire"
)

const (
	snapshotPath = "/snapshot"
	replyWait    = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SnapshotService hands the full board to late joiners over WebSocket. Each
// connection gets exactly one binary Sync frame and is then closed. The
// service does not hold board state itself: every connection raises a
// SnapshotRequestEvent, and whoever drains our events answers it.
type SnapshotService struct {
	port int

	ln    net.Listener
	srv   *http.Server
	inbox chan Event
}

func NewSnapshotService(port int) *SnapshotService {
	return &SnapshotService{
		port:  port,
		inbox: make(chan Event, inboxSize),
	}
}

// Start binds the listener and begins serving. The bind happens here rather
// than in the serve goroutine so a taken port surfaces as an error.
func (s *SnapshotService) Start() error {
	ln, err := net.Listen("tcp4", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("bind snapshot service: %w", err)
	}
	s.ln = ln

	mux := http.NewServeMux()
	mux.HandleFunc(snapshotPath, s.handle)
	s.srv = &http.Server{Handler: mux}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("[snapshot] serve: %v", err)
		}
	}()

	log.Printf("[snapshot] serving on %s%s", ln.Addr(), snapshotPath)
	return nil
}

// Stop closes the listener and any open connections.
func (s *SnapshotService) Stop() {
	if s.srv != nil {
		s.srv.Close()
	}
}

// Port reports the actual bound port, which differs from the requested one
// when started on port 0.
func (s *SnapshotService) Port() int {
	if s.ln == nil {
		return s.port
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Addr reports the bound listen address.
func (s *SnapshotService) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// DrainEvents returns pending snapshot requests without blocking.
func (s *SnapshotService) DrainEvents() []Event {
	var events []Event
	for {
		select {
		case e := <-s.inbox:
			events = append(events, e)
		default:
			return events
		}
	}
}

func (s *SnapshotService) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[snapshot] upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Ask the session for the current board. The reply channel is buffered
	// so the answering side never blocks on us.
	reply := make(chan []byte, 1)
	select {
	case s.inbox <- SnapshotRequestEvent{Reply: reply}:
	default:
		log.Printf("[snapshot] request dropped, inbox full")
		return
	}

	select {
	case frame := <-reply:
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			log.Printf("[snapshot] write: %v", err)
		}
	case <-time.After(replyWait):
		log.Printf("[snapshot] request timed out")
	}
}

// FetchSnapshot dials a peer's snapshot service and returns the one Sync
// frame it serves.
func FetchSnapshot(addr string, timeout time.Duration) (wire.Sync, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial("ws://"+addr+snapshotPath, nil)
	if err != nil {
		return wire.Sync{}, fmt.Errorf("dial snapshot service: %w", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(timeout))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		return wire.Sync{}, fmt.Errorf("read snapshot: %w", err)
	}
	msg, err := wire.Decode(frame)
	if err != nil {
		return wire.Sync{}, fmt.Errorf("decode snapshot: %w", err)
	}
	sync, ok := msg.(wire.Sync)
	if !ok {
		return wire.Sync{}, fmt.Errorf("peer sent %T instead of a snapshot", msg)
	}
	return sync, nil
}
