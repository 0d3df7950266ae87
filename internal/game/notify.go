package game

import (
	"log"
	"time"
)

// Notification fade timings.
const (
	fadeIn          = 300 * time.Millisecond
	fadeOut         = 500 * time.Millisecond
	messageDuration = 3 * time.Second
)

// Message is an on-screen notification that fades in and out.
type Message struct {
	Text     string
	Shown    time.Duration // session time it appeared
	Duration time.Duration
}

// Alpha returns the message opacity at now.
func (m Message) Alpha(now time.Duration) float64 {
	age := now - m.Shown
	left := m.Duration - age
	switch {
	case age < 0 || left <= 0:
		return 0
	case age < fadeIn:
		return float64(age) / float64(fadeIn)
	case left < fadeOut:
		return float64(left) / float64(fadeOut)
	}
	return 1
}

// Notifier is the queue of visible messages, oldest first.
type Notifier struct {
	Messages []Message
}

// Show queues a message for d starting at now.
func (n *Notifier) Show(text string, now, d time.Duration) {
	n.Messages = append(n.Messages, Message{Text: text, Shown: now, Duration: d})
	log.Printf("Message: %s", text)
}

// Update drops expired messages.
func (n *Notifier) Update(now time.Duration) {
	active := n.Messages[:0]
	for _, msg := range n.Messages {
		if now-msg.Shown < msg.Duration {
			active = append(active, msg)
		}
	}
	n.Messages = active
}
