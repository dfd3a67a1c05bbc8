package tui

import "time"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTick is sent once per second to refresh the clock.
type MsgTick struct {
	Time time.Time
}

func (MsgTick) sealed() {}

// MsgClearNotice clears the notice line if it still shows the given generation.
type MsgClearNotice struct {
	Gen int
}

func (MsgClearNotice) sealed() {}

// MsgError is sent when a use case fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
