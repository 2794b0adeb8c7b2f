package create_reservation

import "errors"

var (
	ErrInvalidInput     = errors.New("create_reservation: invalid input")
	ErrInvalidCategory  = errors.New("create_reservation: invalid category")
	ErrDateNotAvailable = errors.New("create_reservation: date not available")
	ErrSearchExhausted  = errors.New("create_reservation: no available date found")
	ErrInternal         = errors.New("create_reservation: internal error")
)
