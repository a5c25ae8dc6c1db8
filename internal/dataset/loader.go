package dataset

import (
	"context"
	"sync"

	"github.com/ruminaider/eurodash/internal/facet"
)

// Result is the outcome of one Loader fetch.
type Result struct {
	Seq      uint64
	Response *Response
	Err      error
}

// Loader coordinates fetches for a single chart. Starting a fetch cancels
// the one in flight, and every fetch carries a sequence number so that a
// completion arriving after a newer fetch began can be recognized and
// dropped.
type Loader struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Begin cancels any in-flight fetch and returns the context and sequence
// number for a new one.
func (l *Loader) Begin(parent context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	l.seq++
	return ctx, l.seq
}

// Current reports whether seq belongs to the most recent fetch.
func (l *Loader) Current(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return seq == l.seq
}

// Seq returns the most recent sequence number, zero before the first fetch.
func (l *Loader) Seq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// Start begins a fetch synchronously and returns a function that performs
// it. The sequence number is assigned at Start, so the order of Start calls
// decides which result is current regardless of completion order.
func (l *Loader) Start(parent context.Context, f Fetcher, endpoint string, sel facet.Selection) func() Result {
	ctx, seq := l.Begin(parent)
	sel = sel.Clone()
	return func() Result {
		resp, err := f.Fetch(ctx, endpoint, sel)
		return Result{Seq: seq, Response: resp, Err: err}
	}
}

// Stop cancels the in-flight fetch, if any.
func (l *Loader) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
