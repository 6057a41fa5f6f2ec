package request

import (
	"errors"
	"strings"
	"time"

	"cabin-booking/internal/domain/booking"
	"cabin-booking/internal/pkg/config"
	"cabin-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

var ErrMalformedDate = errors.New("malformed date: expected YYYY-MM-DD or RFC3339")

type CreateBookingRequest struct {
	CabinID         uuid.UUID  `json:"cabin_id" binding:"required"`
	CheckIn         string     `json:"check_in" binding:"required"`
	CheckOut        string     `json:"check_out" binding:"required"`
	GuestName       string     `json:"guest_name" binding:"required"`
	GuestPhone      string     `json:"guest_phone" binding:"required"`
	GuestEmail      string     `json:"guest_email,omitempty" binding:"omitempty,email"`
	TariffID        *uuid.UUID `json:"tariff_id,omitempty"`
	PrepaymentCents int64      `json:"prepayment_cents" binding:"omitempty,min=0"`
	Notes           *string    `json:"notes,omitempty"`
}

// ToParams validates the payload into domain value objects. Date-only
// fields are anchored to the configured check-in/check-out hours; full
// timestamps pass through verbatim. Anything else is rejected, never
// coerced.
func (r CreateBookingRequest) ToParams(cfg config.BookingConfig) (commands.CreateBookingParams, error) {
	period, err := ParseStayPeriod(r.CheckIn, r.CheckOut, cfg)
	if err != nil {
		return commands.CreateBookingParams{}, err
	}

	guest, err := booking.NewGuest(
		strings.TrimSpace(r.GuestName),
		strings.TrimSpace(r.GuestPhone),
		strings.TrimSpace(r.GuestEmail),
	)
	if err != nil {
		return commands.CreateBookingParams{}, err
	}

	prepayment, err := booking.NewNonNegativeMoney(r.PrepaymentCents)
	if err != nil {
		return commands.CreateBookingParams{}, err
	}

	note := booking.NewNote("")
	if r.Notes != nil {
		note = booking.NewNote(strings.TrimSpace(*r.Notes))
	}

	return commands.CreateBookingParams{
		CabinID:    r.CabinID,
		Period:     period,
		Guest:      guest,
		TariffID:   r.TariffID,
		Prepayment: prepayment,
		Note:       note,
	}, nil
}

type TransitionStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes,omitempty"`
}

// ParseStayPeriod builds the half-open stay interval from two stamps that
// may independently be calendar dates or full timestamps.
func ParseStayPeriod(checkIn, checkOut string, cfg config.BookingConfig) (booking.StayPeriod, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return booking.StayPeriod{}, err
	}

	in, inDateOnly, err := parseStamp(checkIn, loc)
	if err != nil {
		return booking.StayPeriod{}, err
	}
	out, outDateOnly, err := parseStamp(checkOut, loc)
	if err != nil {
		return booking.StayPeriod{}, err
	}

	if inDateOnly {
		in = time.Date(in.Year(), in.Month(), in.Day(), cfg.CheckInHour, 0, 0, 0, loc)
	}
	if outDateOnly {
		out = time.Date(out.Year(), out.Month(), out.Day(), cfg.CheckOutHour, 0, 0, 0, loc)
	}

	return booking.NewStayPeriod(in, out)
}

func parseStamp(raw string, loc *time.Location) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, ErrMalformedDate
}
