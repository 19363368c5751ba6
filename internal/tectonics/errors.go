package tectonics

import "errors"

// Every failure Synthesize returns wraps exactly one of these. None is recoverable
// inside the engine; callers change the configuration or the seed and try again.
var (
	// ErrConfig reports a configuration the mesh cannot satisfy.
	ErrConfig = errors.New("tectonics: invalid configuration")
	// ErrInvalidInput reports a mesh or crust that breaks its structural invariants.
	ErrInvalidInput = errors.New("tectonics: invalid input")
	// ErrSeedStarvation reports that no eligible cell was left for a required seed.
	ErrSeedStarvation = errors.New("tectonics: seed starvation")
	// ErrUnassigned reports cells the partition sweep never reached.
	ErrUnassigned = errors.New("tectonics: unassigned cell")
)
