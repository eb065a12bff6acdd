package catapultdb

import (
	"github.com/MRandl/catapult-db/search"
	"github.com/MRandl/catapult-db/store"
)

// Re-exported error values, so callers can classify failures without
// importing the subpackages.
var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = search.ErrInvalidK

	// ErrBeamTooNarrow is returned when the beam width is smaller than k.
	ErrBeamTooNarrow = search.ErrBeamTooNarrow

	// ErrCountMismatch is returned when the graph and payload disagree on
	// the corpus size.
	ErrCountMismatch = search.ErrCountMismatch

	// ErrMalformed is wrapped by every structural load failure.
	ErrMalformed = store.ErrMalformed
)

// ErrDimensionMismatch indicates a query whose dimensionality does not
// match the corpus.
type ErrDimensionMismatch = search.ErrDimensionMismatch
