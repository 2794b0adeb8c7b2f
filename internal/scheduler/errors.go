package scheduler

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных поиска
	ErrInvalidInput = errors.New("scheduler: invalid input")

	// ErrSearchExhausted возвращается, когда валидная дата не найдена
	// в пределах лимита попыток
	ErrSearchExhausted = errors.New("scheduler: search exhausted")
)

// ExhaustedError несёт количество просмотренных кандидатов
// Совместима с errors.Is(err, ErrSearchExhausted)
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("scheduler: no valid start date within %d candidates", e.Attempts)
}

// Is позволяет сопоставлять ошибку с сентинелом ErrSearchExhausted
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrSearchExhausted
}
