package domain

import (
	"time"

	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

// ReservationStatus represents the status of a deal reservation
type ReservationStatus string

const (
	StatusScheduled ReservationStatus = "scheduled"
	StatusLive      ReservationStatus = "live"
	StatusFinished  ReservationStatus = "finished"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a scheduled promotional deal run
type Reservation struct {
	ID           int64
	CategoryPath CategoryPath
	CategoryKey  string  // Денормализованный канонический ключ категории
	EntityName   *string // Имя мерчанта/бизнеса (nil, если не привязано)
	StartDate    time.Time
	EndDate      time.Time
	Status       ReservationStatus

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its dates
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusScheduled || r.Status == StatusLive
}

// DurationDays returns the reservation length in whole calendar days
// Длительность считается включительно: [start, end] из одного дня = 1
func (r *Reservation) DurationDays(cal civilday.Calendar) int {
	start := cal.DayOf(r.StartDate)
	end := cal.DayOf(r.EndDate)
	return civilday.DaysBetween(start, end) + 1
}

// EntityReservationsFilter фильтр для получения бронирований мерчанта
type EntityReservationsFilter struct {
	EntityName      string // Обязательный параметр, сравнение регистронезависимое
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *ReservationStatus
	IncludeInactive bool // Включать ли отменённые бронирования
}
