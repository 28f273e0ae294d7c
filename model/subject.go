package model

import "github.com/google/uuid"

// Subject is the acting identity for one evaluation session. It is
// constructed once per session and must not be mutated afterwards.
type Subject struct {
	// Key is the stable identifier tested against the user lists of a
	// permissions document.
	Key string `json:"key"`
	// Registered marks a persisted identity, as opposed to a transient
	// guest.
	Registered bool `json:"registered"`
	// Groups are externally supplied group names, if the identity source
	// exposes any.
	Groups []string `json:"groups,omitempty"`
}

// NewGuestSubject synthesizes an anonymous subject. Guest keys are unique
// per session so they never collide with a persisted user key.
func NewGuestSubject() *Subject {
	return &Subject{
		Key:        "guest-" + uuid.New().String(),
		Registered: false,
	}
}
