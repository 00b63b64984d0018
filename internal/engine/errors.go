package engine

import (
	"errors"
	"fmt"
)

// Rejection reasons. Every action that refuses to run returns one of these,
// wrapped with detail, and leaves the game unchanged.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalid               = errors.New("invalid argument")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientIntel     = errors.New("insufficient intel")
	ErrInsufficientInfluence = errors.New("insufficient influence")
	ErrInsufficientSoldiers  = errors.New("insufficient soldiers")
	ErrWrongPhase            = errors.New("not allowed in this phase")
	ErrUnavailable           = errors.New("wounded or arrested")
	ErrAlreadyAssigned       = errors.New("officer already assigned")
	ErrNotAssigned           = errors.New("officer not assigned")
	ErrOccupied              = errors.New("building occupied")
	ErrRebelBase             = errors.New("building held by rebels")
	ErrMaxLevel              = errors.New("building at max level")
	ErrIneligible            = errors.New("not eligible")
	ErrNoConflict            = errors.New("no active conflict")
	ErrNoActiveEvent         = errors.New("no active event")
	ErrRequirementsUnmet     = errors.New("choice requirements not met")
)

func reject(reason error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", reason, fmt.Sprintf(format, args...))
}
