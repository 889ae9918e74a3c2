package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus статус бронирования
// Не хранится в БД, вычисляется при чтении из даты бронирования и текущего момента
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusFinished  BookingStatus = "finished"
)

// Booking бронирование услуги барбершопа на конкретный момент времени
type Booking struct {
	ID        uuid.UUID
	ServiceID uuid.UUID
	UserID    string
	Date      time.Time // всегда в UTC
	CreatedAt time.Time

	// Service заполняется репозиторием при чтении (JOIN barbershop_services)
	Service *Service
}

// StatusAt возвращает статус бронирования относительно момента now
// Бронирование в прошлом считается завершенным, остальные подтвержденными
func (b *Booking) StatusAt(now time.Time) BookingStatus {
	if b.Date.Before(now) {
		return StatusFinished
	}
	return StatusConfirmed
}

// IsFinished returns true if the booking date is before now
func (b *Booking) IsFinished(now time.Time) bool {
	return b.StatusAt(now) == StatusFinished
}

// IsOwnedBy проверяет, принадлежит ли бронирование пользователю
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}
