package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessageAlpha(t *testing.T) {
	m := Message{Text: "hi", Shown: time.Second, Duration: messageDuration}
	ms := func(n int) time.Duration { return time.Second + time.Duration(n)*time.Millisecond }

	assert.Zero(t, m.Alpha(0))
	assert.Zero(t, m.Alpha(ms(0)))
	assert.InDelta(t, 0.5, m.Alpha(ms(150)), 1e-9)
	assert.Equal(t, 1.0, m.Alpha(ms(1500)))
	assert.InDelta(t, 0.5, m.Alpha(ms(2750)), 1e-9)
	assert.Zero(t, m.Alpha(ms(3000)))
}

func TestNotifierDropsExpired(t *testing.T) {
	var n Notifier
	n.Show("first", 0, time.Second)
	n.Show("second", 500*time.Millisecond, time.Second)

	n.Update(999 * time.Millisecond)
	assert.Len(t, n.Messages, 2)
	n.Update(time.Second)
	if assert.Len(t, n.Messages, 1) {
		assert.Equal(t, "second", n.Messages[0].Text)
	}
	n.Update(2 * time.Second)
	assert.Empty(t, n.Messages)
}
