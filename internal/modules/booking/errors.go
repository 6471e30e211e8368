package booking

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("booking not found")
	ErrInvalidState        = errors.New("invalid booking state transition")
	ErrInvalidPromotion    = errors.New("invalid promotion code")
	ErrPolicyNotConfigured = errors.New("active cancellation/no-show policy not configured")
)
