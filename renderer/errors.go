package renderer

import "errors"

var (
	ErrNoWorkers        = errors.New("renderer: at least one worker is required")
	ErrWorldNotDefined  = errors.New("renderer: no world defined")
	ErrInvalidFrameSize = errors.New("renderer: frame dimensions must be positive")
	ErrFrameTooLarge    = errors.New("renderer: frame has too many pixels")
	ErrInvalidSchedule  = errors.New("renderer: scheduled blocks do not cover the frame exactly once")
)
