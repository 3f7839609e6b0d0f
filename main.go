package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lulu110106/projet-Rpaint/internal/config"
	"github.com/Lulu110106/projet-Rpaint/internal/export"
	"github.com/Lulu110106/projet-Rpaint/internal/geom"
	"github.com/Lulu110106/projet-Rpaint/internal/net"
	"github.com/Lulu110106/projet-Rpaint/internal/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("rpaint: %v", err)
	}
}

func run() error {
	rcPath := flag.String("rc", config.DefaultPath(), "path to the rc file")
	name := flag.String("name", "", "display name (overrides the rc file)")
	group := flag.String("group", "", "multicast group address")
	snapPort := flag.Int("snap-port", -1, "snapshot service port, 0 picks a free one")
	boardPath := flag.String("board", "", "board file to load on start and save on exit")
	pdfPath := flag.String("pdf", "", "export the board to this PDF on exit")
	pngPath := flag.String("png", "", "export the board to this PNG on exit")
	scribble := flag.Bool("scribble", false, "draw random strokes, for demos and soak tests")
	tick := flag.Duration("tick", 50*time.Millisecond, "event loop interval")
	flag.Parse()

	cfg := config.Load(config.ExpandHome(*rcPath))
	if *name != "" {
		cfg.Name = *name
	}
	if *group != "" {
		cfg.Group = *group
	}
	if *snapPort >= 0 {
		cfg.SnapPort = *snapPort
	}
	save := config.ExpandHome(*boardPath)
	pdf := config.ExpandHome(*pdfPath)
	png := config.ExpandHome(*pngPath)

	transport, err := net.NewTransport(cfg.Group)
	if err != nil {
		return err
	}

	s := session.New(transport)
	s.SetBrushColor(cfg.BrushColor)
	s.SetBrushWidth(cfg.BrushWidth)

	if save != "" {
		if err := s.LoadBoard(save); err != nil {
			log.Printf("[session] starting with an empty board: %v", err)
		}
	}

	if err := transport.Connect(); err != nil {
		return err
	}
	defer transport.Disconnect()

	// The side services degrade to nil instead of killing the daemon; the
	// board stays usable with incremental sync only.
	snap := net.NewSnapshotService(cfg.SnapPort)
	if err := snap.Start(); err != nil {
		log.Printf("[snapshot] disabled: %v", err)
		snap = nil
	} else {
		defer snap.Stop()
		if ip, err := net.OutgoingIP(); err == nil {
			log.Printf("[snapshot] reachable at %s:%d", ip, snap.Port())
		}
	}

	advertisePort := cfg.SnapPort
	if snap != nil {
		advertisePort = snap.Port()
	}
	disco := net.NewDiscovery(transport.ID(), advertisePort)
	if err := disco.Start(); err != nil {
		log.Printf("[mdns] disabled: %v", err)
		disco = nil
	} else {
		defer disco.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Println("[session] shutting down")
		cancel()
	}()

	log.Printf("[session] %s is up, board has %d strokes", cfg.Name, s.Store().Len())

	ticker := time.NewTicker(*tick)
	defer ticker.Stop()

	var scribbleC <-chan time.Time
	if *scribble {
		scribbler := time.NewTicker(400 * time.Millisecond)
		defer scribbler.Stop()
		scribbleC = scribbler.C
	}

	// One snapshot fetch in flight at most; an empty result re-arms it so
	// the next discovered peer gets a try.
	fetched := make(chan string, 1)
	fetching := false

	for {
		select {
		case <-ctx.Done():
			return shutdown(s, save, pdf, png, cfg.Name)
		case doc := <-fetched:
			if doc == "" {
				fetching = false
			} else if err := s.ApplySnapshot(doc); err != nil {
				log.Printf("[session] fetched snapshot unusable: %v", err)
				fetching = false
			}
		case <-scribbleC:
			drawRandomStroke(s)
		case <-ticker.C:
			s.DrainNetwork()
			if snap != nil {
				for _, e := range snap.DrainEvents() {
					s.HandleEvent(e)
				}
			}
			if disco != nil {
				for _, e := range disco.DrainEvents() {
					if pd, ok := e.(net.PeerDiscoveredEvent); ok && pd.Addr != "" &&
						!fetching && s.Store().Len() == 0 {
						fetching = true
						go fetchInitialBoard(pd.Addr, fetched)
					}
					s.HandleEvent(e)
				}
			}
		}
	}
}

// fetchInitialBoard pulls a snapshot from a discovered peer so a late
// joiner starts from the shared board instead of an empty one. An empty
// string on the channel means the fetch failed.
func fetchInitialBoard(addr string, out chan<- string) {
	sync, err := net.FetchSnapshot(addr, 3*time.Second)
	if err != nil {
		log.Printf("[snapshot] fetch from %s: %v", addr, err)
		out <- ""
		return
	}
	out <- sync.LinesData
}

// shutdown saves and exports whatever the flags asked for.
func shutdown(s *session.Session, save, pdf, png, name string) error {
	if save != "" {
		if err := s.SaveBoard(save); err != nil {
			return err
		}
	}
	if pdf != "" {
		if err := export.ToPDF(pdf, s.Store().Strokes()); err != nil {
			return err
		}
		log.Printf("[session] exported PDF to %s", pdf)
	}
	if png != "" {
		if err := export.ToPNG(png, s.Store().Strokes(), name); err != nil {
			return err
		}
		log.Printf("[session] exported PNG to %s", png)
	}
	return nil
}

// drawRandomStroke commits a small random polyline through the same
// pointer path a front end would use.
func drawRandomStroke(s *session.Session) {
	x := float32(rand.Intn(600))
	y := float32(rand.Intn(400))
	s.PointerPressed(geom.Point{X: x, Y: y})
	for i := 0; i < 4; i++ {
		x += float32(rand.Intn(41) - 20)
		y += float32(rand.Intn(41) - 20)
		s.PointerDragged(geom.Point{X: x, Y: y})
	}
	s.PointerReleased()
}
