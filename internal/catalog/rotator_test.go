package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotator_AdvanceWraps(t *testing.T) {
	r := NewRotator(New().HeroSlides(), time.Hour)
	_, idx, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	r.Advance()
	r.Advance()
	s, idx, _ := r.Current()
	assert.Equal(t, 2, idx)
	assert.Equal(t, "Wasteland Rising", s.Title)

	r.Advance()
	_, idx, _ = r.Current()
	assert.Equal(t, 0, idx)
}

func TestRotator_RunStopsOnCancel(t *testing.T) {
	r := NewRotator(New().HeroSlides(), 2*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, idx, _ := r.Current()
		return idx != 0
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("rotator did not stop after cancel")
	}

	_, before, _ := r.Current()
	time.Sleep(10 * time.Millisecond)
	_, after, _ := r.Current()
	assert.Equal(t, before, after, "stopped rotator must not advance")
}

func TestRotator_Empty(t *testing.T) {
	r := NewRotator(nil, 0)
	_, _, ok := r.Current()
	assert.False(t, ok)
	r.Advance()
}
