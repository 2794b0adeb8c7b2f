package suggest_launch_date

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("suggest_launch_date: invalid input data")

	// ErrInvalidCategory возвращается при некорректном пути категории
	ErrInvalidCategory = errors.New("suggest_launch_date: invalid category path")

	// ErrSearchExhausted возвращается, когда валидная дата не найдена
	// в пределах лимита попыток
	ErrSearchExhausted = errors.New("suggest_launch_date: no available date within search limit")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("suggest_launch_date: internal error")
)
