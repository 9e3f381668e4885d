package alertness

import "github.com/pkg/errors"

var (
	// ErrMalformedLandmarks marks a landmark set the model should never have
	// produced: wrong cardinality or non-finite coordinates.
	ErrMalformedLandmarks = errors.New("malformed landmarks")
	ErrInvalidTopology    = errors.New("invalid landmark topology")
	ErrUnknownSignal      = errors.New("unknown signal source")
)
