package net

import "github.com/Lulu110106/projet-Rpaint/internal/wire"

// Event is what the network side reports back to the interactive loop. The
// set is closed; the loop drains pending events once per tick and is the
// only consumer, so the board is never touched from a network goroutine.
type Event interface {
	event()
}

// ConnectedEvent fires once when the transport joins the group.
type ConnectedEvent struct{}

// DisconnectedEvent fires once when the transport leaves the group. All
// datagram-inferred peers are forgotten at that point.
type DisconnectedEvent struct{}

// MessageEvent carries one decoded peer message.
type MessageEvent struct {
	Msg  wire.Message
	From string
}

// PeerDiscoveredEvent announces a peer seen for the first time. Addr is the
// peer's snapshot endpoint when discovery learned it, and empty for peers
// only inferred from their datagrams.
type PeerDiscoveredEvent struct {
	ID   string
	Addr string
}

// PeerExpiredEvent announces a peer that fell silent past the liveness
// window.
type PeerExpiredEvent struct {
	ID string
}

// SnapshotRequestEvent asks the interactive loop for an encoded Sync frame
// of the current board. The requester waits on Reply with a timeout, so the
// handler should send exactly one reply and never block.
type SnapshotRequestEvent struct {
	Reply chan []byte
}

func (ConnectedEvent) event()       {}
func (DisconnectedEvent) event()    {}
func (MessageEvent) event()         {}
func (PeerDiscoveredEvent) event()  {}
func (PeerExpiredEvent) event()     {}
func (SnapshotRequestEvent) event() {}
