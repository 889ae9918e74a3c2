package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

var (
	// ErrInvalidSchedule возвращается при некорректных параметрах сетки слотов
	ErrInvalidSchedule = errors.New("domain: invalid slot schedule")
)

// SlotSchedule сетка слотов: время открытия, закрытия (включительно) и шаг
// Все значения задаются в часовом поясе Location
type SlotSchedule struct {
	Location    *time.Location
	OpeningTime types.TimeString
	ClosingTime types.TimeString
	StepMinutes int
}

// Validate проверяет параметры сетки
func (s SlotSchedule) Validate() error {
	if s.Location == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidSchedule)
	}
	if err := s.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: opening time: %v", ErrInvalidSchedule, err)
	}
	if err := s.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: closing time: %v", ErrInvalidSchedule, err)
	}
	if s.ClosingTime.IsBefore(s.OpeningTime) {
		return fmt.Errorf("%w: closing time %s is before opening time %s", ErrInvalidSchedule, s.ClosingTime, s.OpeningTime)
	}
	if s.StepMinutes < MinSlotStepMinutes || s.StepMinutes > MaxSlotStepMinutes {
		return fmt.Errorf("%w: step must be between %d and %d minutes, got %d",
			ErrInvalidSchedule, MinSlotStepMinutes, MaxSlotStepMinutes, s.StepMinutes)
	}
	return nil
}

// CandidateTimes генерирует упорядоченный список времен начала слотов
// от открытия до закрытия включительно
// По умолчанию (08:00..18:00, шаг 60) это 11 слотов
func (s SlotSchedule) CandidateTimes() ([]types.TimeString, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	closing := s.ClosingTime.Minutes()
	candidates := make([]types.TimeString, 0, (closing-s.OpeningTime.Minutes())/s.StepMinutes+1)

	for ts := s.OpeningTime; ts.Minutes() <= closing; {
		candidates = append(candidates, ts)

		next, err := ts.AddMinutes(s.StepMinutes)
		if err != nil {
			// следующий слот перешел бы через полночь
			break
		}
		ts = next
	}

	return candidates, nil
}

// IsCandidate проверяет, совпадает ли момент t с одним из времен сетки
// в поясе сетки; секунды должны быть нулевыми
func IsCandidate(t time.Time, loc *time.Location, candidates []types.TimeString) bool {
	local := t.In(loc)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return false
	}

	ts := types.NewTimeString(local)
	for _, c := range candidates {
		if c.Equal(ts) {
			return true
		}
	}
	return false
}
