package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

var brt = time.FixedZone("BRT", -3*60*60)

func TestCalendarDay_Range(t *testing.T) {
	day := NewCalendarDay(brt, 2024, time.July, 26)

	assert.Equal(t, time.Date(2024, 7, 26, 3, 0, 0, 0, time.UTC), day.Start())
	assert.Equal(t, time.Date(2024, 7, 27, 3, 0, 0, 0, time.UTC), day.End())
	assert.Equal(t, "2024-07-26", day.String())
}

func TestCalendarDay_Contains(t *testing.T) {
	day := NewCalendarDay(brt, 2024, time.July, 26)

	// 02:30 UTC 27 июля это 23:30 26 июля по BRT
	assert.True(t, day.Contains(time.Date(2024, 7, 27, 2, 30, 0, 0, time.UTC)))
	assert.True(t, day.Contains(day.Start()))
	assert.False(t, day.Contains(day.End()))
	assert.False(t, day.Contains(time.Date(2024, 7, 26, 2, 59, 0, 0, time.UTC)))
}

func TestCalendarDay_At(t *testing.T) {
	day := NewCalendarDay(brt, 2024, time.July, 26)

	got := day.At(types.TimeString("10:00"))

	assert.Equal(t, time.Date(2024, 7, 26, 13, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestCalendarDay_Normalizes(t *testing.T) {
	day := NewCalendarDay(nil, 2024, time.January, 32)

	y, m, d := day.Date()
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.February, m)
	assert.Equal(t, 1, d)
	assert.Equal(t, time.UTC, day.Location())
}

func TestCalendarDay_In(t *testing.T) {
	utcDay := NewCalendarDay(time.UTC, 2024, time.July, 26)

	day := utcDay.In(brt)

	assert.True(t, day.Equal(utcDay))
	assert.Equal(t, brt, day.Location())
	assert.Equal(t, time.Date(2024, 7, 26, 3, 0, 0, 0, time.UTC), day.Start())
	assert.Equal(t, time.Date(2024, 7, 26, 11, 0, 0, 0, time.UTC), day.At("08:00"))
}

func TestCalendarDay_Before(t *testing.T) {
	a := NewCalendarDay(time.UTC, 2024, time.July, 26)
	b := NewCalendarDay(time.UTC, 2024, time.August, 1)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestParseCalendarDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain date", input: "2024-07-26", want: "2024-07-26"},
		{name: "utc instant inside day", input: "2024-07-26T15:00:00Z", want: "2024-07-26"},
		{name: "utc instant of next day maps back", input: "2024-07-27T02:00:00Z", want: "2024-07-26"},
		{name: "midnight local sent as utc", input: "2024-07-26T03:00:00.000Z", want: "2024-07-26"},
		{name: "garbage", input: "26/07/2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := ParseCalendarDay(tt.input, brt)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, day.String())
			assert.Equal(t, brt, day.Location())
		})
	}
}
