package kdtree

import "errors"

var (
	// Raised (via panic) when a leaf is left without a rope on a face that
	// is not part of the index boundary.
	ErrBrokenRope = errors.New("kdtree: rope consistency check failed")
)
