package types

import "time"

// CompletedGesture is the record of one classified gesture, as published on
// the status server's WebSocket feed.
type CompletedGesture struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Motion     string    `json:"motion"`
	Qualifier  string    `json:"qualifier,omitempty"`
	HeldKeys   string    `json:"heldKeys,omitempty"`
	Trigger    string    `json:"trigger,omitempty"`
	App        string    `json:"app,omitempty"`
	Scope      string    `json:"scope,omitempty"`
	Commands   []string  `json:"commands,omitempty"`
	Dispatched bool      `json:"dispatched"`
	Timestamp  time.Time `json:"timestamp"`
}
