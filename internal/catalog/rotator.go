package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/cinebook/internal/model"
)

// DefaultRotateEvery is how long each hero slide stays current.
const DefaultRotateEvery = 5 * time.Second

// Rotator cycles through the hero slides.  Run drives it from a ticker and
// returns when its context is cancelled, so a stopped rotator never moves
// again.
type Rotator struct {
	mu       sync.RWMutex
	slides   []model.HeroSlide
	current  int
	interval time.Duration
}

// NewRotator returns a rotator positioned on the first slide.
func NewRotator(slides []model.HeroSlide, interval time.Duration) *Rotator {
	if interval <= 0 {
		interval = DefaultRotateEvery
	}
	return &Rotator{slides: append([]model.HeroSlide(nil), slides...), interval: interval}
}

// Run advances the slide every interval until ctx is done.
func (r *Rotator) Run(ctx context.Context) {
	if len(r.slides) < 2 {
		<-ctx.Done()
		return
	}
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Advance()
		}
	}
}

// Advance moves to the next slide, wrapping at the end.
func (r *Rotator) Advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.slides) == 0 {
		return
	}
	r.current = (r.current + 1) % len(r.slides)
}

// Current returns the active slide and its index.  ok is false when there
// are no slides.
func (r *Rotator) Current() (slide model.HeroSlide, index int, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.slides) == 0 {
		return model.HeroSlide{}, 0, false
	}
	return r.slides[r.current], r.current, true
}
