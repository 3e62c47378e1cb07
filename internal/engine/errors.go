package engine

import (
	"errors"

	"github.com/dshills/notebook/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrInvalidCapacity indicates a non-positive undo limit.
	// It is the same value as history.ErrInvalidCapacity.
	ErrInvalidCapacity = history.ErrInvalidCapacity

	// ErrInvalidFontSize indicates a font size outside [MinFontSize, MaxFontSize].
	ErrInvalidFontSize = errors.New("font size out of range")
)
