package player

import (
	"errors"

	"lofigirl-terminal/internal/resolver"
)

var (
	ErrInvalidStation    = errors.New("invalid station")
	ErrNoStationLoaded   = errors.New("no station loaded")
	ErrOutOfRange        = errors.New("volume out of range")
	ErrEngineUnavailable = errors.New("playback engine unavailable")
	ErrEngineError       = errors.New("playback engine error")

	// ErrResolutionFailed is shared with the resolver so either package's
	// sentinel matches a failed lookup.
	ErrResolutionFailed = resolver.ErrResolutionFailed
)
