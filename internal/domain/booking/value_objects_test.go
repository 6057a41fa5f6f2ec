//go:build unit

package booking_test

import (
	"testing"
	"time"

	"cabin-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(day, hour int) time.Time {
	return time.Date(2026, 7, day, hour, 0, 0, 0, time.UTC)
}

func mustPeriod(t *testing.T, in, out time.Time) booking.StayPeriod {
	t.Helper()
	p, err := booking.NewStayPeriod(in, out)
	require.NoError(t, err)
	return p
}

func TestStayPeriod(t *testing.T) {
	t.Run("rejects inverted and empty intervals", func(t *testing.T) {
		_, err := booking.NewStayPeriod(date(5, 14), date(3, 12))
		assert.Error(t, err)

		_, err = booking.NewStayPeriod(date(5, 14), date(5, 14))
		assert.Error(t, err, "zero-length stay is invalid")
	})

	t.Run("from dates anchors hours in location", func(t *testing.T) {
		loc, err := time.LoadLocation("Europe/Moscow")
		require.NoError(t, err)

		p, err := booking.NewStayPeriodFromDates(
			time.Date(2026, 7, 3, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 7, 6, 0, 1, 0, 0, time.UTC),
			14, 12, loc,
		)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 7, 3, 14, 0, 0, 0, loc), p.CheckIn())
		assert.Equal(t, time.Date(2026, 7, 6, 12, 0, 0, 0, loc), p.CheckOut())
	})

	t.Run("overlap is half-open", func(t *testing.T) {
		base := mustPeriod(t, date(10, 14), date(13, 12))

		cases := []struct {
			name     string
			other    booking.StayPeriod
			overlaps bool
		}{
			{"identical", mustPeriod(t, date(10, 14), date(13, 12)), true},
			{"contained", mustPeriod(t, date(11, 14), date(12, 12)), true},
			{"containing", mustPeriod(t, date(9, 14), date(14, 12)), true},
			{"front overlap", mustPeriod(t, date(9, 14), date(11, 12)), true},
			{"tail overlap", mustPeriod(t, date(12, 14), date(15, 12)), true},
			{"back-to-back after", mustPeriod(t, date(13, 12), date(15, 12)), false},
			{"back-to-back before", mustPeriod(t, date(8, 14), date(10, 14)), false},
			{"disjoint after", mustPeriod(t, date(20, 14), date(22, 12)), false},
			{"disjoint before", mustPeriod(t, date(1, 14), date(3, 12)), false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.overlaps, base.Overlaps(tc.other))
				assert.Equal(t, tc.overlaps, tc.other.Overlaps(base), "overlap must be symmetric")
			})
		}
	})

	t.Run("nights rounds up and never drops below one", func(t *testing.T) {
		cases := []struct {
			name   string
			in     time.Time
			out    time.Time
			nights int
		}{
			{"three nights with early checkout", date(10, 14), date(13, 12), 3},
			{"exactly one day", date(10, 14), date(11, 14), 1},
			{"sub-day stay", date(10, 14), date(10, 20), 1},
			{"one day plus an hour", date(10, 14), date(11, 15), 2},
			{"one week", date(10, 14), date(17, 14), 7},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.nights, mustPeriod(t, tc.in, tc.out).Nights())
			})
		}
	})
}

func TestMoney(t *testing.T) {
	t.Run("arithmetic", func(t *testing.T) {
		a := booking.NewMoney(150050)
		b := booking.NewMoney(50)

		assert.Equal(t, int64(150100), a.Add(b).Cents())
		assert.Equal(t, int64(150000), a.Sub(b).Cents())
		assert.Equal(t, int64(450150), a.MulDays(3).Cents())
		assert.InDelta(t, 1500.50, a.Units(), 0.001)
	})

	t.Run("negative remains representable for derived amounts", func(t *testing.T) {
		overpaid := booking.NewMoney(100).Sub(booking.NewMoney(250))
		assert.True(t, overpaid.IsNegative())
		assert.Equal(t, int64(-150), overpaid.Cents())
	})

	t.Run("non-negative constructor", func(t *testing.T) {
		_, err := booking.NewNonNegativeMoney(-1)
		assert.Error(t, err)

		m, err := booking.NewNonNegativeMoney(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})
}

func TestGuest(t *testing.T) {
	t.Run("name and phone required, email optional", func(t *testing.T) {
		_, err := booking.NewGuest("", "+7 900 000-00-01", "")
		assert.ErrorIs(t, err, booking.ErrGuestNameRequired)

		_, err = booking.NewGuest("Ivan Petrov", "", "")
		assert.ErrorIs(t, err, booking.ErrGuestPhoneRequired)

		g, err := booking.NewGuest("Ivan Petrov", "+7 900 000-00-01", "")
		require.NoError(t, err)
		assert.Empty(t, g.Email())
	})
}
