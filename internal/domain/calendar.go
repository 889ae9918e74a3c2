package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

// ErrInvalidDate возвращается, когда дату не удалось разобрать
var ErrInvalidDate = errors.New("domain: invalid date")

// CalendarDay календарный день в конкретном часовом поясе
// Все сравнения "в какой день попало бронирование" выполняются через него,
// а не через локальное время сервера
type CalendarDay struct {
	loc   *time.Location
	year  int
	month time.Month
	day   int
}

// NewCalendarDay создает день; nil location означает UTC
// Переполнение (например 32 января) нормализуется как в time.Date
func NewCalendarDay(loc *time.Location, year int, month time.Month, day int) CalendarDay {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := time.Date(year, month, day, 12, 0, 0, 0, loc).Date()
	return CalendarDay{loc: loc, year: y, month: m, day: d}
}

// CalendarDayOf возвращает день, на который приходится момент t в поясе loc
func CalendarDayOf(t time.Time, loc *time.Location) CalendarDay {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return CalendarDay{loc: loc, year: y, month: m, day: d}
}

// ParseCalendarDay разбирает "YYYY-MM-DD" как дату в поясе loc
// Полный RFC3339 момент (так дату присылает фронтенд) переводится в loc и берется его дата
func ParseCalendarDay(s string, loc *time.Location) (CalendarDay, error) {
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.ParseInLocation(DateFormat, s, loc); err == nil {
		return CalendarDayOf(t, loc), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return CalendarDay{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return CalendarDayOf(t, loc), nil
}

func (d CalendarDay) Location() *time.Location {
	if d.loc == nil {
		return time.UTC
	}
	return d.loc
}

func (d CalendarDay) Date() (int, time.Month, int) {
	return d.year, d.month, d.day
}

func (d CalendarDay) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Start возвращает начало дня (00:00 в поясе дня) в UTC
func (d CalendarDay) Start() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, d.Location()).UTC()
}

// End возвращает начало следующего дня в UTC, интервал [Start, End) полуоткрытый
func (d CalendarDay) End() time.Time {
	return time.Date(d.year, d.month, d.day+1, 0, 0, 0, 0, d.Location()).UTC()
}

// Contains проверяет, попадает ли момент t в этот день
func (d CalendarDay) Contains(t time.Time) bool {
	return CalendarDayOf(t, d.Location()).Equal(d)
}

// At возвращает момент времени ts этого дня в UTC
func (d CalendarDay) At(ts types.TimeString) time.Time {
	return ts.On(time.Date(d.year, d.month, d.day, 0, 0, 0, 0, d.Location())).UTC()
}

// Equal сравнивает только дату, часовой пояс не учитывается
func (d CalendarDay) Equal(other CalendarDay) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}

// In возвращает ту же календарную дату в поясе loc
func (d CalendarDay) In(loc *time.Location) CalendarDay {
	return NewCalendarDay(loc, d.year, d.month, d.day)
}

// Before сообщает, что дата d раньше даты other
func (d CalendarDay) Before(other CalendarDay) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// String возвращает дату в формате YYYY-MM-DD
func (d CalendarDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}
