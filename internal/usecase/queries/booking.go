package queries

import (
	"context"
	"time"

	"cabin-booking/internal/domain/booking"
	"cabin-booking/internal/infra"
	"cabin-booking/internal/infra/cache"
	"cabin-booking/internal/pkg/clock"
	"cabin-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// availableDatesHorizon bounds the free-dates calendar, matching the
// one-year window of the booking UI.
const availableDatesHorizon = 365 * 24 * time.Hour

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListAll(ctx context.Context) ([]*BookingListItem, error)
	ListByCabin(ctx context.Context, cabinID uuid.UUID) ([]*BookingListItem, error)
	FindBlockingOverlaps(ctx context.Context, cabinID uuid.UUID, checkIn, checkOut time.Time) ([]BookingConflictView, error)
	ListBlockingWindows(ctx context.Context, cabinID uuid.UUID, from, until time.Time) ([]StayWindow, error)
}

type CabinReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CabinView, error)
}

// AvailabilityCache accelerates the advisory reads. Entries expire on their
// TTL and are dropped wholesale when a mutation touches their cabin.
type AvailabilityCache interface {
	Get(key string) (any, bool)
	SetForCabin(cabinID uuid.UUID, key string, value any)
	SetGlobal(key string, value any)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// List returns all bookings, or a cabin's non-cancelled bookings when a
	// cabin is given.
	List(ctx context.Context, cabinID *uuid.UUID) ([]*BookingListItem, error)
	// CheckAvailability is the advisory pre-check: cache-accelerated and
	// non-authoritative. The binding check runs inside the create
	// transaction.
	CheckAvailability(ctx context.Context, cabinID uuid.UUID, period booking.StayPeriod) (*AvailabilityResult, error)
	// AvailableDates lists the free calendar dates for the next year.
	AvailableDates(ctx context.Context, cabinID uuid.UUID) ([]string, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	cabins   CabinReadStore
	cache    AvailabilityCache
	clock    clock.Clock
	loc      *time.Location
}

func NewBookingQueries(
	bookings BookingReadStore,
	cabins CabinReadStore,
	availabilityCache AvailabilityCache,
	clk clock.Clock,
	loc *time.Location,
) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		cabins:   cabins,
		cache:    availabilityCache,
		clock:    clk,
		loc:      loc,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, cabinID *uuid.UUID) ([]*BookingListItem, error) {
	if cabinID == nil {
		return q.listAll(ctx)
	}
	return q.listByCabin(ctx, *cabinID)
}

func (q *bookingQueriesImpl) listAll(ctx context.Context) ([]*BookingListItem, error) {
	if v, ok := q.cache.Get(cache.AllBookingsKey); ok {
		if items, ok := v.([]*BookingListItem); ok {
			return items, nil
		}
	}

	items, err := q.bookings.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	q.cache.SetGlobal(cache.AllBookingsKey, items)
	return items, nil
}

func (q *bookingQueriesImpl) listByCabin(ctx context.Context, cabinID uuid.UUID) ([]*BookingListItem, error) {
	key := cache.CabinBookingsKey(cabinID)
	if v, ok := q.cache.Get(key); ok {
		if items, ok := v.([]*BookingListItem); ok {
			return items, nil
		}
	}

	if _, err := q.cabins.FindByID(ctx, cabinID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCabinNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	items, err := q.bookings.ListByCabin(ctx, cabinID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	q.cache.SetForCabin(cabinID, key, items)
	return items, nil
}

func (q *bookingQueriesImpl) CheckAvailability(ctx context.Context, cabinID uuid.UUID, period booking.StayPeriod) (*AvailabilityResult, error) {
	key := cache.AvailabilityKey(cabinID, period.CheckIn(), period.CheckOut())
	if v, ok := q.cache.Get(key); ok {
		if result, ok := v.(*AvailabilityResult); ok {
			return result, nil
		}
	}

	if _, err := q.cabins.FindByID(ctx, cabinID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCabinNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	conflicts, err := q.bookings.FindBlockingOverlaps(ctx, cabinID, period.CheckIn(), period.CheckOut())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	result := &AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}
	q.cache.SetForCabin(cabinID, key, result)
	return result, nil
}

func (q *bookingQueriesImpl) AvailableDates(ctx context.Context, cabinID uuid.UUID) ([]string, error) {
	key := cache.CabinCalendarKey(cabinID)
	if v, ok := q.cache.Get(key); ok {
		if dates, ok := v.([]string); ok {
			return dates, nil
		}
	}

	if _, err := q.cabins.FindByID(ctx, cabinID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCabinNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := q.clock.Now().In(q.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, q.loc)
	until := from.Add(availableDatesHorizon)

	windows, err := q.bookings.ListBlockingWindows(ctx, cabinID, from, until)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	dates := freeDates(from, until, windows, q.loc)
	q.cache.SetForCabin(cabinID, key, dates)
	return dates, nil
}

// freeDates walks the calendar day by day and keeps the dates no occupied
// window covers. A window occupies its check-in date through the day before
// its check-out date; the check-out date itself stays free.
func freeDates(from, until time.Time, windows []StayWindow, loc *time.Location) []string {
	occupied := make(map[string]struct{})
	for _, w := range windows {
		in := w.CheckIn.In(loc)
		out := w.CheckOut.In(loc)
		day := time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, loc)
		last := time.Date(out.Year(), out.Month(), out.Day(), 0, 0, 0, 0, loc)
		for ; day.Before(last); day = day.AddDate(0, 0, 1) {
			occupied[day.Format(time.DateOnly)] = struct{}{}
		}
	}

	var dates []string
	for day := from; day.Before(until); day = day.AddDate(0, 0, 1) {
		date := day.Format(time.DateOnly)
		if _, taken := occupied[date]; !taken {
			dates = append(dates, date)
		}
	}
	return dates
}
