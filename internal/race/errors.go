package race

import (
	"errors"
	"fmt"
)

var (
	// ErrContractViolation marks invalid caller input: negative radius or
	// speed, non-finite coordinates, roster edits during a run. It is
	// raised with panic, never returned from the step path.
	ErrContractViolation = errors.New("race: contract violation")

	// ErrUnknownRunner is returned when a runner ID is not in the roster.
	ErrUnknownRunner = errors.New("race: unknown runner")
)

func violation(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...)))
}
