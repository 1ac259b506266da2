package game

import "encoding/json"

type SessionState int

const (
	StateMenu SessionState = iota
	StatePlaying
	// StateCaught is the jumpscare pause between contact and game over.
	// It is still part of a running session.
	StateCaught
	StateGameOver
	StateVictory
)

func (s SessionState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateCaught:
		return "caught"
	case StateGameOver:
		return "game_over"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes SessionState as a string.
func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Running reports whether a session is in progress (including the jumpscare).
func (s SessionState) Running() bool {
	return s == StatePlaying || s == StateCaught
}

// Terminal reports whether the session has ended and waits for a restart.
func (s SessionState) Terminal() bool {
	return s == StateGameOver || s == StateVictory
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeCaught
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeCaught:
		return "caught"
	case OutcomeAbandoned:
		return "abandoned"
	default:
		return "none"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) Outcome {
	switch s {
	case "victory":
		return OutcomeVictory
	case "caught":
		return OutcomeCaught
	case "abandoned":
		return OutcomeAbandoned
	default:
		return OutcomeNone
	}
}

// MarshalJSON serializes Outcome as a string.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}
