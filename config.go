package keychord

import "time"

// Config configures a Registry.
type Config struct {
	// SequenceTimeout is how long the sequence buffer survives without a
	// new key press before it is cleared. Default: 1000ms.
	// A zero or negative value disables the idle timer entirely; the buffer
	// then persists until a sequence match or Close.
	SequenceTimeout time.Duration

	// ClearBufferOnComboMatch clears the sequence buffer when a single-key
	// combination matches. Default: false, so a one-key shortcut firing
	// mid-sequence does not abort an in-progress longer sequence.
	ClearBufferOnComboMatch bool

	// MaxBufferLength bounds the sequence buffer. When zero, the bound is
	// the length of the longest currently-registered sequence (minimum 1).
	// Oldest presses are dropped from the front when the bound is exceeded.
	MaxBufferLength int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SequenceTimeout:         1000 * time.Millisecond,
		ClearBufferOnComboMatch: false,
		MaxBufferLength:         0,
	}
}
