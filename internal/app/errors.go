package app

import "errors"

// ErrBusy is returned when the analysis queue is at capacity.
var ErrBusy = errors.New("analysis queue full, too many concurrent requests - try again later")
