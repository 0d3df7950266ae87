package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDrainRunsDueEffectsInOrder(t *testing.T) {
	q := New()
	var order []string

	q.At(300*time.Millisecond, func(time.Duration) { order = append(order, "c") })
	q.At(150*time.Millisecond, func(time.Duration) { order = append(order, "b") })
	q.At(150*time.Millisecond, func(time.Duration) { order = append(order, "b2") })
	q.At(0, func(time.Duration) { order = append(order, "a") })

	assert.Equal(t, 1, q.Drain(100*time.Millisecond))
	assert.Equal(t, []string{"a"}, order)

	assert.Equal(t, 2, q.Drain(200*time.Millisecond))
	assert.Equal(t, []string{"a", "b", "b2"}, order)
	assert.Equal(t, 1, q.Len())

	q.Drain(time.Second)
	assert.Equal(t, []string{"a", "b", "b2", "c"}, order)
	assert.Zero(t, q.Len())
}

func TestEffectsScheduledDuringDrain(t *testing.T) {
	q := New()
	ran := 0
	q.At(0, func(now time.Duration) {
		ran++
		q.After(now, 0, func(time.Duration) { ran++ })
		q.After(now, time.Second, func(time.Duration) { ran++ })
	})

	q.Drain(10 * time.Millisecond)
	assert.Equal(t, 2, ran)
	assert.Equal(t, 1, q.Len())
}
