package schedule

import "errors"

var (
	ErrInvalidRange = errors.New("invalid slot time range")
	ErrConflict     = errors.New("slot conflicts with an existing slot")
)
