package handlers

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

var (
	// ErrMissingDate возвращается, когда параметр date не передан
	ErrMissingDate = errors.New("handlers: date is required")

	// ErrInvalidTimeZone возвращается для неизвестного IANA пояса
	ErrInvalidTimeZone = errors.New("handlers: invalid time zone")
)

// ParseDay разбирает query параметры date и tz
// Пустой tz означает defaultLoc
func ParseDay(date, tz string, defaultLoc *time.Location) (domain.CalendarDay, error) {
	if date == "" {
		return domain.CalendarDay{}, ErrMissingDate
	}

	loc := defaultLoc
	if tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return domain.CalendarDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeZone, tz)
		}
		loc = parsed
	}

	return domain.ParseCalendarDay(date, loc)
}
