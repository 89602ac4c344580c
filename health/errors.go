package health

import "errors"

var (
	// ErrCheckerNotFound indicates no probe is registered under the name.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrNoCheckers indicates no probes are registered.
	ErrNoCheckers = errors.New("health: no checkers registered")
)
