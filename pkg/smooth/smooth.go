// Package smooth averages noisy time-estimate samples over a fixed-size
// sliding window.
package smooth

import (
	"github.com/tlind/battray/pkg/powerinfo"
)

// Buffer holds the last N valid duration samples, in minutes. The oldest
// sample is evicted when the buffer is full. Samples of different estimate
// kinds must not be mixed: adding a sample of a new kind drops everything
// recorded before it.
//
// Buffer is not safe for concurrent use; the poll loop is its only owner.
type Buffer struct {
	capacity int
	kind     powerinfo.EstimateKind
	samples  []float64
}

// NewBuffer returns a buffer holding up to capacity samples.
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		capacity: capacity,
		samples:  make([]float64, 0, capacity),
	}
}

// Add records a sample. Zero or negative samples are discarded rather
// than inserted.
func (b *Buffer) Add(kind powerinfo.EstimateKind, minutes float64) {
	if kind == powerinfo.EstimateNone || minutes <= 0 {
		return
	}

	if kind != b.kind {
		b.samples = b.samples[:0]
		b.kind = kind
	}

	if len(b.samples) >= b.capacity {
		b.samples = b.samples[1:]
	}
	b.samples = append(b.samples, minutes)
}

// Mean returns the arithmetic mean of the buffered samples. ok is false
// when the buffer is empty.
func (b *Buffer) Mean() (minutes float64, ok bool) {
	if len(b.samples) == 0 {
		return 0, false
	}

	var sum float64
	for _, s := range b.samples {
		sum += s
	}
	return sum / float64(len(b.samples)), true
}

// Kind returns the estimate kind of the buffered samples, or
// EstimateNone when the buffer is empty.
func (b *Buffer) Kind() powerinfo.EstimateKind {
	if len(b.samples) == 0 {
		return powerinfo.EstimateNone
	}
	return b.kind
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Reset drops all buffered samples.
func (b *Buffer) Reset() {
	b.samples = b.samples[:0]
	b.kind = powerinfo.EstimateNone
}
