package domain

// Default scheduling policy values
const (
	DefaultCooldownDays      = 30
	DefaultDurationDays      = 7
	DefaultMinStartsPerDay   = 8
	DefaultMaxStartsPerDay   = 13
	DefaultMaxSearchAttempts = 730 // 2 года поиска вперёд
)

// Business validation constants
const (
	MaxCategoryDepth = 5

	MinDurationDays = 1
	MaxDurationDays = 365

	MinCooldownDays = 0
	MaxCooldownDays = 365

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих даты в календаре
// Используется при фильтрации бронирований для проверок правил
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, занимающих даты в календаре
var ActiveStatuses = []ReservationStatus{
	StatusScheduled,
	StatusLive,
	StatusFinished,
}
