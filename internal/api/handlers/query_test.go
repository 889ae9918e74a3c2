package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

func TestParseDay(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	t.Run("plain date in default zone", func(t *testing.T) {
		day, err := ParseDay("2024-07-26", "", saoPaulo)
		require.NoError(t, err)
		assert.True(t, day.Equal(domain.NewCalendarDay(saoPaulo, 2024, time.July, 26)))
	})

	t.Run("instant converted into explicit zone", func(t *testing.T) {
		// 02:00 UTC 27 июля это вечер 26 июля в Сан-Паулу
		day, err := ParseDay("2024-07-27T02:00:00Z", "America/Sao_Paulo", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, "2024-07-26", day.String())
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := ParseDay("", "", saoPaulo)
		assert.ErrorIs(t, err, ErrMissingDate)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := ParseDay("2024-07-26", "Mars/Olympus", saoPaulo)
		assert.ErrorIs(t, err, ErrInvalidTimeZone)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := ParseDay("26/07/2024", "", saoPaulo)
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})
}
