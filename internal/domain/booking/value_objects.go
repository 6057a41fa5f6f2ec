package booking

import (
	"errors"
	"fmt"
	"time"
)

// StayPeriod is the half-open occupancy interval [checkIn, checkOut).
// The checkout instant does not occupy the cabin, so back-to-back stays
// (one guest leaving the day another arrives) never collide.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	if !checkIn.Before(checkOut) {
		return StayPeriod{}, errors.New("check-in must be before check-out")
	}

	return StayPeriod{
		checkIn:  checkIn,
		checkOut: checkOut,
	}, nil
}

// NewStayPeriodFromDates anchors calendar dates to the fixed check-in and
// check-out hours in loc. Time-of-day on the inputs is discarded.
func NewStayPeriodFromDates(checkInDate, checkOutDate time.Time, checkInHour, checkOutHour int, loc *time.Location) (StayPeriod, error) {
	checkIn := time.Date(checkInDate.Year(), checkInDate.Month(), checkInDate.Day(), checkInHour, 0, 0, 0, loc)
	checkOut := time.Date(checkOutDate.Year(), checkOutDate.Month(), checkOutDate.Day(), checkOutHour, 0, 0, 0, loc)
	return NewStayPeriod(checkIn, checkOut)
}

func (p StayPeriod) CheckIn() time.Time {
	return p.checkIn
}

func (p StayPeriod) CheckOut() time.Time {
	return p.checkOut
}

func (p StayPeriod) Duration() time.Duration {
	return p.checkOut.Sub(p.checkIn)
}

// Overlaps applies the half-open intersection test:
// p.checkIn < other.checkOut AND other.checkIn < p.checkOut.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

// Nights is the billable day count: duration rounded up to whole days,
// never below one even for sub-day stays.
func (p StayPeriod) Nights() int {
	const day = 24 * time.Hour
	d := p.Duration()
	nights := int((d + day - 1) / day)
	if nights < 1 {
		nights = 1
	}
	return nights
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format(time.RFC3339), p.checkOut.Format(time.RFC3339))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewNonNegativeMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Units() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) MulDays(days int) Money {
	return Money{cents: m.cents * int64(days)}
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

// Guest is the free-form contact block captured at creation.
// Name and phone are required, email is optional.
type Guest struct {
	name  string
	phone string
	email string
}

func NewGuest(name, phone, email string) (Guest, error) {
	if name == "" {
		return Guest{}, ErrGuestNameRequired
	}
	if phone == "" {
		return Guest{}, ErrGuestPhoneRequired
	}
	return Guest{name: name, phone: phone, email: email}, nil
}

func (g Guest) Name() string  { return g.name }
func (g Guest) Phone() string { return g.phone }
func (g Guest) Email() string { return g.email }

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
