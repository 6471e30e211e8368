package promotion

import "errors"

var (
	ErrNotFound          = errors.New("promotion code not found")
	ErrExpired           = errors.New("promotion is inactive or outside its date range")
	ErrExhausted         = errors.New("promotion usage limit reached")
	ErrBudgetExhausted   = errors.New("promotion discount budget exhausted")
	ErrUserLimitExceeded = errors.New("per-user usage limit reached")
	ErrDayRestricted     = errors.New("promotion not valid on this day")
	ErrHourRestricted    = errors.New("promotion not valid at this hour")
	ErrBelowMinimum      = errors.New("order subtotal below promotion minimum")
	ErrAudienceMismatch  = errors.New("customer not in promotion audience")
)
