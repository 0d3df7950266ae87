// Package sched holds effects that should run at a later point of session time.
// The orchestrator drains the queue once per frame, which keeps staggered
// effects deterministic and testable without real timers.
package sched

import (
	"sort"
	"time"
)

// Effect is a deferred action. It receives the frame time it ran at.
type Effect func(now time.Duration)

type event struct {
	at  time.Duration
	seq uint64
	fn  Effect
}

// Queue is an ordered list of pending effects.
type Queue struct {
	events []event
	seq    uint64
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// At schedules fn to run on the first drain whose time is >= at.
func (q *Queue) At(at time.Duration, fn Effect) {
	if fn == nil {
		return
	}
	q.seq++
	q.events = append(q.events, event{at: at, seq: q.seq, fn: fn})
	sort.SliceStable(q.events, func(i, j int) bool {
		if q.events[i].at != q.events[j].at {
			return q.events[i].at < q.events[j].at
		}
		return q.events[i].seq < q.events[j].seq
	})
}

// After schedules fn to run delay after now.
func (q *Queue) After(now, delay time.Duration, fn Effect) {
	q.At(now+delay, fn)
}

// Drain runs every effect due at or before now, in schedule order, and
// returns how many ran. Effects scheduled while draining that are already
// due also run in the same call.
func (q *Queue) Drain(now time.Duration) int {
	ran := 0
	for len(q.events) > 0 && q.events[0].at <= now {
		ev := q.events[0]
		q.events = q.events[1:]
		ev.fn(now)
		ran++
	}
	return ran
}

// Len returns the number of pending effects.
func (q *Queue) Len() int {
	return len(q.events)
}

// Clear drops every pending effect.
func (q *Queue) Clear() {
	q.events = nil
}
