package gateway

import (
	"context"
	"sync"
)

// Token identifies a request issued by a Sequencer.
type Token uint64

// Sequencer orders overlapping requests. Beginning a request cancels the one
// before it, and responses to anything but the latest request are stale.
// The zero value is ready for use.
type Sequencer struct {
	mutex  sync.Mutex
	latest Token
	cancel context.CancelFunc
}

// Begin starts a new request, canceling the previous one. The returned context
// is canceled when the next request begins.
func (s *Sequencer) Begin(ctx context.Context) (context.Context, Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.latest++
	return ctx, s.latest
}

// Latest returns whether token belongs to the most recently begun request.
func (s *Sequencer) Latest(token Token) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return token == s.latest
}

// Close cancels the latest request, if any.
func (s *Sequencer) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
