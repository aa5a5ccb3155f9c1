package handler

import (
	"time"

	"github.com/pmartell/logconf/core"
)

// entryWriter is the synchronous write half of a handler, used by the
// async queue worker.
type entryWriter interface {
	write(entry *core.Entry) error
}

// asyncQueue is the buffered delivery path shared by StreamHandler and
// FileHandler. Entries handed to enqueue are owned by the queue: the
// worker returns them to the pool after writing. Dropped entries are
// counted but not recycled, since the producer may still hold a
// reference when a drop races with a send.
type asyncQueue struct {
	w            entryWriter
	queue        chan *core.Entry
	closed       chan struct{}
	done         chan struct{}
	policy       map[core.Level]OverflowPolicy
	blockTimeout time.Duration
	drainTimeout time.Duration
	stats        *Stats
}

func newAsyncQueue(w entryWriter, size int, policy map[core.Level]OverflowPolicy, blockTimeout, drainTimeout time.Duration, stats *Stats) *asyncQueue {
	q := &asyncQueue{
		w:            w,
		queue:        make(chan *core.Entry, size),
		closed:       make(chan struct{}),
		done:         make(chan struct{}),
		policy:       policy,
		blockTimeout: blockTimeout,
		drainTimeout: drainTimeout,
		stats:        stats,
	}
	go q.process()
	return q
}

// enqueue delivers an entry according to the overflow policy for its level.
func (q *asyncQueue) enqueue(entry *core.Entry) error {
	policy, ok := q.policy[entry.Level]
	if !ok {
		policy = DropNewest // Default if not specified
	}

	switch policy {
	case Block:
		select {
		case q.queue <- entry:
			return nil
		default:
		}
		// Queue full, wait up to blockTimeout before falling back to a
		// synchronous write on the caller's goroutine.
		timer := time.NewTimer(q.blockTimeout)
		defer timer.Stop()
		select {
		case q.queue <- entry:
			return nil
		case <-timer.C:
			q.stats.IncrementBlocked()
			return q.w.write(entry)
		case <-q.closed:
			return q.w.write(entry)
		}

	case DropOldest:
		select {
		case q.queue <- entry:
			return nil
		default:
		}
		// Queue full - make room by discarding the oldest entry
		select {
		case old := <-q.queue:
			q.stats.IncrementDropped(old.Level)
		default:
		}
		select {
		case q.queue <- entry:
			return nil
		default:
			// Still full, drop this one
			q.stats.IncrementDropped(entry.Level)
			return nil
		}

	case DropNewest:
		fallthrough
	default:
		select {
		case q.queue <- entry:
			return nil
		default:
			// Queue full - drop this entry
			q.stats.IncrementDropped(entry.Level)
			return nil
		}
	}
}

// process is the queue worker goroutine. Write failures count the
// entry as dropped but keep the worker alive, so a transient sink
// error does not silently swallow everything enqueued afterwards.
func (q *asyncQueue) process() {
	defer close(q.done)

	for {
		select {
		case entry := <-q.queue:
			q.deliver(entry)
		case <-q.closed:
			// Drain remaining entries with timeout
			deadline := time.After(q.drainTimeout)
		drainLoop:
			for {
				select {
				case entry := <-q.queue:
					q.deliver(entry)
				case <-deadline:
					break drainLoop
				default:
					// Queue empty
					break drainLoop
				}
			}
			return
		}
	}
}

// deliver writes one queue-owned entry and recycles it.
func (q *asyncQueue) deliver(entry *core.Entry) {
	if err := q.w.write(entry); err != nil {
		q.stats.IncrementDropped(entry.Level)
	}
	core.PutEntry(entry)
}

// close stops the worker and waits for the drain to finish. Safe to
// call more than once.
func (q *asyncQueue) close() {
	select {
	case <-q.closed:
		return
	default:
	}
	close(q.closed)
	<-q.done
}
