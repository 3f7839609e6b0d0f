package net

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Lulu110106/projet-Rpaint/internal/wire"
)

func startSnapshotService(t *testing.T) *SnapshotService {
	t.Helper()
	svc := NewSnapshotService(0)
	if err := svc.Start(); err != nil {
		t.Fatalf("start snapshot service: %v", err)
	}
	t.Cleanup(svc.Stop)
	if svc.Port() == 0 {
		t.Fatal("service should have picked a real port")
	}
	return svc
}

// answer drains the service until a request shows up and replies with the
// given frame, the way the session loop would.
func answer(t *testing.T, svc *SnapshotService, frame []byte) chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			for _, e := range svc.DrainEvents() {
				if req, ok := e.(SnapshotRequestEvent); ok {
					req.Reply <- frame
					return
				}
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()
	return done
}

func TestSnapshotRoundTrip(t *testing.T) {
	svc := startSnapshotService(t)

	const doc = `[{"points":[[1,2],[3,4]],"color":4278228735,"width":4}]`
	done := answer(t, svc, wire.Encode(wire.Sync{LinesData: doc}))

	addr := fmt.Sprintf("127.0.0.1:%d", svc.Port())
	sync, err := FetchSnapshot(addr, 2*time.Second)
	<-done
	if err != nil {
		t.Fatalf("fetch snapshot: %v", err)
	}
	if sync.LinesData != doc {
		t.Fatalf("snapshot = %q, want %q", sync.LinesData, doc)
	}
}

func TestFetchSnapshotRejectsNonSync(t *testing.T) {
	svc := startSnapshotService(t)

	done := answer(t, svc, wire.Encode(wire.Clear{}))

	addr := fmt.Sprintf("127.0.0.1:%d", svc.Port())
	_, err := FetchSnapshot(addr, 2*time.Second)
	<-done
	if err == nil || !strings.Contains(err.Error(), "instead of a snapshot") {
		t.Fatalf("fetch = %v, want a non-snapshot complaint", err)
	}
}

func TestFetchSnapshotNoService(t *testing.T) {
	if _, err := FetchSnapshot("127.0.0.1:1", 300*time.Millisecond); err == nil {
		t.Fatal("expected a dial error against a dead port")
	}
}

func TestSnapshotRequestTimesOutUnanswered(t *testing.T) {
	svc := startSnapshotService(t)

	// Nobody drains the service, so the handler gives up after its reply
	// window and closes without sending a frame.
	addr := fmt.Sprintf("127.0.0.1:%d", svc.Port())
	if _, err := FetchSnapshot(addr, replyWait+2*time.Second); err == nil {
		t.Fatal("expected an error when no one answers the request")
	}
}
