package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvariant marks a conservation failure: cards were lost or duplicated.
	ErrInvariant = errors.New("invariant violation")

	// ErrInvalidGroup marks an asset group with fewer than two cards or no natural card.
	ErrInvalidGroup = errors.New("invalid asset group")

	// ErrRoundLimit means the turn loop failed to terminate within its bound.
	ErrRoundLimit = errors.New("round limit exceeded")

	// ErrBadConfig is returned for game configurations that cannot be dealt.
	ErrBadConfig = errors.New("bad game config")
)

// InvariantError reports which conservation check failed in which game.
type InvariantError struct {
	GameID uuid.UUID
	Seed   int64
	Round  int
	Check  string
	Want   int
	Got    int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("game %s (seed %d, round %d): %s: want %d, got %d",
		e.GameID, e.Seed, e.Round, e.Check, e.Want, e.Got)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}
