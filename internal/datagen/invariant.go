package datagen

import "fmt"

// maxResampleAttempts bounds how often a violating draw is resampled before
// generation gives up. Exhausting it means a distribution is misconfigured,
// not that we were unlucky.
const maxResampleAttempts = 8

// InvariantError reports that a sampled record still violated a declared
// invariant after bounded resampling. It is fatal to the run.
type InvariantError struct {
	Entity   string
	Attempts int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("generation stage: %s record violated its invariants after %d attempts; check the configured distributions",
		e.Entity, e.Attempts)
}
