//go:build unit

package request_test

import (
	"testing"
	"time"

	"cabin-booking/internal/domain/booking"
	"cabin-booking/internal/handler/dto/request"
	"cabin-booking/internal/pkg/config"
	"cabin-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingCfg() config.BookingConfig {
	return config.BookingConfig{
		CheckInHour:  14,
		CheckOutHour: 12,
		TimeZone:     "Europe/Moscow",
	}
}

func TestParseStayPeriod(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	t.Run("date-only inputs anchor to the house hours", func(t *testing.T) {
		p, err := request.ParseStayPeriod("2026-07-10", "2026-07-13", bookingCfg())
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 7, 10, 14, 0, 0, 0, loc), p.CheckIn())
		assert.Equal(t, time.Date(2026, 7, 13, 12, 0, 0, 0, loc), p.CheckOut())
	})

	t.Run("full timestamps pass through verbatim", func(t *testing.T) {
		p, err := request.ParseStayPeriod(
			"2026-07-10T16:30:00+03:00",
			"2026-07-13T09:00:00+03:00",
			bookingCfg(),
		)
		require.NoError(t, err)

		assert.Equal(t, 16, p.CheckIn().Hour())
		assert.Equal(t, 9, p.CheckOut().Hour())
	})

	t.Run("mixed forms are allowed", func(t *testing.T) {
		p, err := request.ParseStayPeriod("2026-07-10", "2026-07-13T09:00:00+03:00", bookingCfg())
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 7, 10, 14, 0, 0, 0, loc), p.CheckIn())
	})

	t.Run("malformed stamps are rejected, never coerced", func(t *testing.T) {
		for _, raw := range []string{"07/10/2026", "2026-7-10", "tomorrow", ""} {
			_, err := request.ParseStayPeriod(raw, "2026-07-13", bookingCfg())
			assert.ErrorIs(t, err, request.ErrMalformedDate, "input %q", raw)
		}
	})

	t.Run("inverted interval is rejected", func(t *testing.T) {
		_, err := request.ParseStayPeriod("2026-07-13", "2026-07-10", bookingCfg())
		assert.Error(t, err)
	})

	t.Run("same-day date pair is rejected by the anchored hours", func(t *testing.T) {
		// 14:00 check-in is after the 12:00 check-out of the same day.
		_, err := request.ParseStayPeriod("2026-07-10", "2026-07-10", bookingCfg())
		assert.Error(t, err)
	})
}

func TestCreateBookingRequestToParams(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()

		params, err := req.ToParams(bookingCfg())
		require.NoError(t, err)

		assert.Equal(t, req.CabinID, params.CabinID)
		require.NotNil(t, params.TariffID)
		assert.Equal(t, *req.TariffID, *params.TariffID)
		assert.Equal(t, req.PrepaymentCents, params.Prepayment.Cents())
		assert.True(t, params.Note.IsEmpty())
	})

	t.Run("guest fields are trimmed and validated", func(t *testing.T) {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		req.GuestName = "   "

		_, err := req.ToParams(bookingCfg())
		assert.ErrorIs(t, err, booking.ErrGuestNameRequired)

		req = builder.NewBookingBuilder().BuildCreateRequestDTO()
		req.GuestPhone = ""
		_, err = req.ToParams(bookingCfg())
		assert.ErrorIs(t, err, booking.ErrGuestPhoneRequired)
	})

	t.Run("negative prepayment rejected", func(t *testing.T) {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		req.PrepaymentCents = -1

		_, err := req.ToParams(bookingCfg())
		assert.Error(t, err)
	})

	t.Run("notes are optional", func(t *testing.T) {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		notes := "  early check-in requested  "
		req.Notes = &notes

		params, err := req.ToParams(bookingCfg())
		require.NoError(t, err)
		assert.Equal(t, "early check-in requested", params.Note.String())
	})
}
