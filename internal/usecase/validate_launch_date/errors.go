package validate_launch_date

import "errors"

var (
	ErrInvalidInput    = errors.New("validate_launch_date: invalid input")
	ErrInvalidCategory = errors.New("validate_launch_date: invalid category")
	ErrInternal        = errors.New("validate_launch_date: internal error")
)
