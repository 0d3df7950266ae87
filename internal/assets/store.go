package assets

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"chosenoffset.com/cattown/internal/render"
)

// maxParallelLoads bounds concurrent file reads.
const maxParallelLoads = 8

// Gate counts settled loads. It opens once every expected image has either
// loaded or failed, so a missing file cannot hold up startup.
type Gate struct {
	mu      sync.Mutex
	total   int
	settled int
	failed  int
}

// NewGate expects total settlements.
func NewGate(total int) *Gate {
	return &Gate{total: total}
}

// Settle records one finished load.
func (g *Gate) Settle(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.settled++
	if err != nil {
		g.failed++
	}
}

// Open reports whether every expected load has settled.
func (g *Gate) Open() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settled >= g.total
}

// Progress returns settled and total counts.
func (g *Gate) Progress() (settled, total int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settled, g.total
}

// Failed returns how many loads failed.
func (g *Gate) Failed() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failed
}

// Store holds loaded images by key.
type Store struct {
	mu     sync.RWMutex
	images map[string]render.Image
	gate   *Gate
	done   chan struct{}
	err    error
}

// NewStore creates an empty, already open store. Useful when images are
// supplied directly.
func NewStore() *Store {
	done := make(chan struct{})
	close(done)
	return &Store{images: make(map[string]render.Image), gate: NewGate(0), done: done}
}

// Load starts loading every manifest entry from root in the background and
// returns immediately. Poll Gate().Open() or call Wait.
func Load(ctx context.Context, loader render.ResourceLoader, root string, manifest []Entry) *Store {
	s := &Store{
		images: make(map[string]render.Image, len(manifest)),
		gate:   NewGate(len(manifest)),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxParallelLoads)
		for _, e := range manifest {
			e := e
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					s.gate.Settle(err)
					return nil
				}
				img, err := loader.LoadImage(filepath.Join(root, e.Path))
				if err != nil {
					log.Printf("Warning: Failed to load image %s: %v", e.Path, err)
				} else {
					s.Put(e.Key, img)
				}
				s.gate.Settle(err)
				return nil
			})
		}
		_ = g.Wait()
		if err := ctx.Err(); err != nil {
			s.err = fmt.Errorf("loading assets: %w", err)
		}
		settled, total := s.gate.Progress()
		log.Printf("Loaded %d/%d images (%d failed)", settled-s.gate.Failed(), total, s.gate.Failed())
	}()
	return s
}

// Wait blocks until every load has settled.
func (s *Store) Wait() error {
	<-s.done
	return s.err
}

// Gate exposes the readiness counter.
func (s *Store) Gate() *Gate {
	return s.gate
}

// Put stores an image under key.
func (s *Store) Put(key string, img render.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[key] = img
}

// Image returns the image for key, or false when it is missing.
func (s *Store) Image(key string) (render.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[key]
	return img, ok
}

// Ready reports whether key has finished loading.
func (s *Store) Ready(key string) bool {
	_, ok := s.Image(key)
	return ok
}
