package testutil

import "sync"

// ChangeSource is a hand-cranked stand-in for the file watcher: tests call
// Emit to deliver a change notification and Close to end the stream.
type ChangeSource struct {
	once   sync.Once
	events chan struct{}
}

// NewChangeSource returns an open ChangeSource.
func NewChangeSource() *ChangeSource {
	return &ChangeSource{events: make(chan struct{})}
}

// Events returns the notification channel.
func (s *ChangeSource) Events() <-chan struct{} {
	return s.events
}

// Emit delivers one change notification, blocking until it is received.
func (s *ChangeSource) Emit() {
	s.events <- struct{}{}
}

// Close ends the stream. Safe to call more than once.
func (s *ChangeSource) Close() {
	s.once.Do(func() { close(s.events) })
}
