// Package views holds the per-screen view models. Each model is a plain value
// owned by its screen; every update returns a new value and performs no I/O.
package views

import (
	"time"
)

// FlashDuration is how long a status message stays visible.
const FlashDuration = 3 * time.Second

type FlashKind int

const (
	FlashSuccess FlashKind = iota + 1
	FlashError
)

type Flash struct {
	Kind      FlashKind
	Message   string
	ExpiresAt time.Time
}

func NewFlash(kind FlashKind, msg string, now time.Time) Flash {
	return Flash{Kind: kind, Message: msg, ExpiresAt: now.Add(FlashDuration)}
}

func (f Flash) Active(now time.Time) bool {
	return f.Message != "" && now.Before(f.ExpiresAt)
}

func errorFlash(err error, now time.Time) Flash {
	msg := "An error occurred"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return NewFlash(FlashError, msg, now)
}
