//go:build unit || e2e

package builder

import (
	"time"

	dombooking "cabin-booking/internal/domain/booking"
	"cabin-booking/internal/domain/cabin"
	"cabin-booking/internal/domain/tariff"
	reqdto "cabin-booking/internal/handler/dto/request"
	"cabin-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	CabinID         uuid.UUID
	CabinName       string
	TariffID        uuid.UUID
	TariffName      string
	PricePerDay     int64
	GuestName       string
	GuestPhone      string
	GuestEmail      string
	CheckIn         time.Time
	CheckOut        time.Time
	Status          dombooking.Status
	TotalCostCents  int64
	PrepaymentCents int64
	Notes           string
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	loc := time.UTC
	return &BookingBuilder{
		CabinID:         uuid.New(),
		CabinName:       "Lakeside Cabin",
		TariffID:        uuid.New(),
		TariffName:      "Standard",
		PricePerDay:     500000, // 5000.00 per day
		GuestName:       "Ivan Petrov",
		GuestPhone:      "+7 900 000-00-01",
		GuestEmail:      "guest@example.com",
		CheckIn:         time.Date(2026, 6, 10, 14, 0, 0, 0, loc),
		CheckOut:        time.Date(2026, 6, 13, 12, 0, 0, 0, loc),
		Status:          dombooking.StatusBooked,
		TotalCostCents:  1500000,
		PrepaymentCents: 100000,
		Notes:           "",
		CreatedAt:       time.Date(2026, 6, 1, 10, 0, 0, 0, loc),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildPeriod() (dombooking.StayPeriod, error) {
	return dombooking.NewStayPeriod(b.CheckIn, b.CheckOut)
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	period, err := b.BuildPeriod()
	if err != nil {
		return nil, err
	}
	guest, err := dombooking.NewGuest(b.GuestName, b.GuestPhone, b.GuestEmail)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(
		b.CabinID, b.TariffID,
		period, guest,
		dombooking.NewMoney(b.TotalCostCents), dombooking.NewMoney(b.PrepaymentCents),
		dombooking.NewNote(b.Notes),
		b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildCabin() (*cabin.Cabin, error) {
	return cabin.NewCabin(b.CabinID, b.CabinName)
}

func (b *BookingBuilder) BuildTariff() (*tariff.Tariff, error) {
	return tariff.NewTariff(b.TariffID, b.TariffName, b.PricePerDay)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CabinID:         b.CabinID,
		CheckIn:         b.CheckIn.Format(time.RFC3339),
		CheckOut:        b.CheckOut.Format(time.RFC3339),
		GuestName:       b.GuestName,
		GuestPhone:      b.GuestPhone,
		GuestEmail:      b.GuestEmail,
		TariffID:        &b.TariffID,
		PrepaymentCents: b.PrepaymentCents,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:              uuid.New(),
		CabinID:         b.CabinID,
		CabinName:       b.CabinName,
		TariffID:        b.TariffID,
		GuestName:       b.GuestName,
		GuestPhone:      b.GuestPhone,
		GuestEmail:      b.GuestEmail,
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
		Status:          b.Status.String(),
		TotalCostCents:  b.TotalCostCents,
		PrepaymentCents: b.PrepaymentCents,
		TotalPaidCents:  b.PrepaymentCents,
		RemainingCents:  b.TotalCostCents - b.PrepaymentCents,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:             uuid.New(),
		CabinID:        b.CabinID,
		CabinName:      b.CabinName,
		GuestName:      b.GuestName,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		Status:         b.Status.String(),
		TotalCostCents: b.TotalCostCents,
		CreatedAt:      b.CreatedAt,
	}
}
