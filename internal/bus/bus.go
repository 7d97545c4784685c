// Package bus is the observable message fan-out for pipeline events.
// The engine publishes one message per stage; the REPL status line and
// the auditor each hold a tap. Publishing never blocks the pipeline — a
// full subscriber drops the message with a warning rather than stalling
// a synchronous interpretation.
package bus

import (
	"log"
	"sync"

	"github.com/haricheung/blockshell/internal/types"
)

const subscriberBufSize = 256

// Bus fans every published message out to all subscribers.
type Bus struct {
	mu   sync.RWMutex
	subs []chan types.Message
}

// New creates a Bus.
func New() *Bus {
	return &Bus{}
}

// Publish delivers msg to every subscriber. Non-blocking: a subscriber
// whose channel is full misses the message.
func (b *Bus) Publish(msg types.Message) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- msg:
		default:
			log.Printf("[BUS] WARNING: subscriber full — dropped type=%s from=%s", msg.Type, msg.From)
		}
	}
}

// Subscribe returns a channel receiving every subsequent message.
func (b *Bus) Subscribe() <-chan types.Message {
	ch := make(chan types.Message, subscriberBufSize)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Close closes all subscriber channels. Publish must not be called after
// Close.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
