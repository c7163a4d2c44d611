package app

import (
	"sync"

	"coursebank-service/internal/domain"
)

// Mode is the top-level tag deciding which engine may run.
type Mode int

const (
	ModeIdle Mode = iota
	ModeQuiz
	ModeChallenge
)

func (m Mode) String() string {
	switch m {
	case ModeQuiz:
		return "quiz"
	case ModeChallenge:
		return "challenge"
	default:
		return "idle"
	}
}

// ModeGate makes the quiz and challenge engines mutually exclusive. Each engine
// acquires the gate on start and releases it on reset/exit, so neither can
// observe or corrupt the other's session.
type ModeGate struct {
	mu   sync.Mutex
	mode Mode
}

func NewModeGate() *ModeGate {
	return &ModeGate{}
}

// Acquire claims the gate for the given mode. It fails while any mode other
// than idle holds it, including a stale claim of the same mode.
func (g *ModeGate) Acquire(mode Mode) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.mode {
	case ModeIdle:
		g.mode = mode
		return nil
	case ModeQuiz:
		return domain.ErrQuizActive
	default:
		return domain.ErrChallengeActive
	}
}

// Release returns the gate to idle, but only for the current holder. A release
// from a superseded session is a no-op.
func (g *ModeGate) Release(mode Mode) {
	g.mu.Lock()
	if g.mode == mode {
		g.mode = ModeIdle
	}
	g.mu.Unlock()
}

// Current reports the active mode.
func (g *ModeGate) Current() Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}
