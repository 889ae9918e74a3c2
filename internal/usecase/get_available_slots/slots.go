package get_available_slots

import (
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// AvailableSlots вычисляет свободные времена начала для услуги на день day
//
// Время T из candidates исключается, если:
//   - есть бронирование, которое в поясе day приходится на тот же день с теми же часом и минутой;
//   - day совпадает с сегодняшним днем (now в поясе day) и T не позже текущего времени
//     с точностью до минуты (T == now тоже исключается).
//
// Для прошедших дней результат пустой. Порядок candidates сохраняется.
// Функция чистая: одинаковые аргументы дают одинаковый результат
func AvailableSlots(
	day domain.CalendarDay,
	candidates []types.TimeString,
	bookings []*domain.Booking,
	now time.Time,
) []types.TimeString {
	loc := day.Location()
	today := domain.CalendarDayOf(now, loc)

	result := make([]types.TimeString, 0, len(candidates))
	if day.Before(today) {
		return result
	}

	isToday := day.Equal(today)
	currentTime := types.NewTimeString(now.In(loc))
	booked := bookedTimes(day, bookings)

	for _, candidate := range candidates {
		if _, taken := booked[candidate.Minutes()]; taken {
			continue
		}
		if isToday && !candidate.IsAfter(currentTime) {
			continue
		}
		result = append(result, candidate)
	}

	return result
}

// bookedTimes возвращает занятые времена дня в минутах от полуночи (в поясе day)
func bookedTimes(day domain.CalendarDay, bookings []*domain.Booking) map[int]struct{} {
	booked := make(map[int]struct{}, len(bookings))

	for _, booking := range bookings {
		if booking == nil || !day.Contains(booking.Date) {
			continue
		}
		local := booking.Date.In(day.Location())
		booked[local.Hour()*60+local.Minute()] = struct{}{}
	}

	return booked
}
