// audio_tap.go - PIT channel 2 speaker tap.
//
// Samples the PPI-gated speaker level once per tick batch into a
// lock-free ring buffer (the same single-producer/single-consumer
// pattern the teacher's own chip-sound cores use for their output
// buffers), and drains it on a background goroutine managed by an
// errgroup.Group so a consumer error (closed sink, full downstream
// buffer) propagates back through Stop/Wait instead of silently wedging.
package main

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const audioRingSize = 1 << 14 // 16384 samples, power-of-two for cheap masking

// SpeakerTap observes the PC speaker's gated square wave and exposes a
// bounded sample ring a background drain goroutine consumes.
type SpeakerTap struct {
	ring      [audioRingSize]float32
	writePos  atomic.Uint64
	readPos   atomic.Uint64
	frozen    atomic.Bool

	sink func(samples []float32) error

	group  *errgroup.Group
	cancel context.CancelFunc
}

// NewSpeakerTap constructs a tap; sink is called with batches of drained
// samples from the background goroutine once Start is called.
func NewSpeakerTap(sink func(samples []float32) error) *SpeakerTap {
	return &SpeakerTap{sink: sink}
}

// Observe is called once per tick batch with the PIT's current gated
// speaker output level, converting it to a +-1 sample.
func (t *SpeakerTap) Observe(speakerOn bool) {
	if t.frozen.Load() {
		return
	}
	var v float32
	if speakerOn {
		v = 1
	} else {
		v = -1
	}
	pos := t.writePos.Load()
	t.ring[pos%audioRingSize] = v
	t.writePos.Store(pos + 1)
}

// Start launches the background drain goroutine. Calling Start twice
// without an intervening Stop is a programmer error.
func (t *SpeakerTap) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	g, gctx := errgroup.WithContext(ctx)
	t.group = g
	g.Go(func() error {
		batch := make([]float32, 0, 256)
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			batch = batch[:0]
			for t.readPos.Load() < t.writePos.Load() && len(batch) < cap(batch) {
				pos := t.readPos.Load()
				batch = append(batch, t.ring[pos%audioRingSize])
				t.readPos.Store(pos + 1)
			}
			if len(batch) == 0 {
				continue
			}
			if err := t.sink(batch); err != nil {
				return err
			}
		}
	})
}

// Freeze suspends sampling without tearing down the drain goroutine,
// letting the monitor's freeze/thaw-audio command mute the tap instantly.
func (t *SpeakerTap) Freeze() { t.frozen.Store(true) }

// Thaw resumes sampling after Freeze.
func (t *SpeakerTap) Thaw() { t.frozen.Store(false) }

// Stop cancels the drain goroutine and waits for it to exit, returning
// any error the sink reported.
func (t *SpeakerTap) Stop() error {
	if t.cancel == nil {
		return nil
	}
	t.cancel()
	err := t.group.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}
