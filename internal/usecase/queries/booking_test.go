//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"cabin-booking/internal/domain/booking"
	"cabin-booking/internal/infra"
	"cabin-booking/internal/infra/cache"
	"cabin-booking/internal/pkg/clock"
	"cabin-booking/internal/pkg/config"
	"cabin-booking/internal/pkg/errs"
	"cabin-booking/internal/usecase/queries"
	"cabin-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingReadStore struct {
	view      *queries.BookingView
	items     []*queries.BookingListItem
	conflicts []queries.BookingConflictView
	windows   []queries.StayWindow

	listAllCalls     int
	listByCabinCalls int
	overlapCalls     int
	windowCalls      int
}

func (s *fakeBookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if s.view == nil || s.view.ID != id {
		return nil, infra.WrapRepoErr("booking not found", assert.AnError, infra.KindNotFound)
	}
	return s.view, nil
}

func (s *fakeBookingReadStore) ListAll(context.Context) ([]*queries.BookingListItem, error) {
	s.listAllCalls++
	return s.items, nil
}

func (s *fakeBookingReadStore) ListByCabin(context.Context, uuid.UUID) ([]*queries.BookingListItem, error) {
	s.listByCabinCalls++
	return s.items, nil
}

func (s *fakeBookingReadStore) FindBlockingOverlaps(context.Context, uuid.UUID, time.Time, time.Time) ([]queries.BookingConflictView, error) {
	s.overlapCalls++
	return s.conflicts, nil
}

func (s *fakeBookingReadStore) ListBlockingWindows(context.Context, uuid.UUID, time.Time, time.Time) ([]queries.StayWindow, error) {
	s.windowCalls++
	return s.windows, nil
}

type fakeCabinReadStore struct {
	known map[uuid.UUID]*queries.CabinView
}

func (s *fakeCabinReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.CabinView, error) {
	if view, ok := s.known[id]; ok {
		return view, nil
	}
	return nil, infra.WrapRepoErr("cabin not found", assert.AnError, infra.KindNotFound)
}

type queriesFixture struct {
	store   *fakeBookingReadStore
	cabins  *fakeCabinReadStore
	cache   *cache.ResourceCache
	clock   *clock.MockClock
	queries queries.BookingQueries
	b       *builder.BookingBuilder
}

func newQueriesFixture(t *testing.T) *queriesFixture {
	t.Helper()

	b := builder.NewBookingBuilder()
	store := &fakeBookingReadStore{}
	cabins := &fakeCabinReadStore{known: map[uuid.UUID]*queries.CabinView{
		b.CabinID: {ID: b.CabinID, Name: b.CabinName},
	}}
	resourceCache := cache.New(config.CacheConfig{TTL: time.Minute, CleanupInterval: time.Minute})
	mockClock := clock.NewMockClock(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC))

	return &queriesFixture{
		store:   store,
		cabins:  cabins,
		cache:   resourceCache,
		clock:   mockClock,
		queries: queries.NewBookingQueries(store, cabins, resourceCache, mockClock, time.UTC),
		b:       b,
	}
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		f := newQueriesFixture(t)
		f.store.view = f.b.BuildView()

		actual, err := f.queries.GetByID(ctx, f.store.view.ID)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(f.store.view, actual))
	})

	t.Run("not found", func(t *testing.T) {
		f := newQueriesFixture(t)
		_, err := f.queries.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("all bookings served from cache on repeat", func(t *testing.T) {
		f := newQueriesFixture(t)
		f.store.items = []*queries.BookingListItem{f.b.BuildListItem(), f.b.BuildListItem()}

		first, err := f.queries.List(ctx, nil)
		require.NoError(t, err)
		second, err := f.queries.List(ctx, nil)
		require.NoError(t, err)

		assert.Empty(t, cmp.Diff(first, second))
		assert.Equal(t, 1, f.store.listAllCalls, "second read must hit the cache")
	})

	t.Run("by cabin served from cache on repeat", func(t *testing.T) {
		f := newQueriesFixture(t)
		f.store.items = []*queries.BookingListItem{f.b.BuildListItem()}

		_, err := f.queries.List(ctx, &f.b.CabinID)
		require.NoError(t, err)
		_, err = f.queries.List(ctx, &f.b.CabinID)
		require.NoError(t, err)

		assert.Equal(t, 1, f.store.listByCabinCalls)
	})

	t.Run("unknown cabin", func(t *testing.T) {
		f := newQueriesFixture(t)
		unknown := uuid.New()
		_, err := f.queries.List(ctx, &unknown)
		assert.ErrorIs(t, err, errs.ErrCabinNotFound)
	})

	t.Run("invalidation forces a fresh read", func(t *testing.T) {
		f := newQueriesFixture(t)
		f.store.items = []*queries.BookingListItem{f.b.BuildListItem()}

		_, err := f.queries.List(ctx, &f.b.CabinID)
		require.NoError(t, err)

		f.cache.InvalidateCabin(f.b.CabinID)

		f.store.items = append(f.store.items, f.b.BuildListItem())
		refreshed, err := f.queries.List(ctx, &f.b.CabinID)
		require.NoError(t, err)

		assert.Equal(t, 2, f.store.listByCabinCalls)
		assert.Len(t, refreshed, 2)
	})
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()

	period := func(t *testing.T, f *queriesFixture) (uuid.UUID, time.Time, time.Time) {
		t.Helper()
		return f.b.CabinID, f.b.CheckIn, f.b.CheckOut
	}

	t.Run("free period", func(t *testing.T) {
		f := newQueriesFixture(t)
		cabinID, in, out := period(t, f)
		p := mustStayPeriod(t, in, out)

		result, err := f.queries.CheckAvailability(ctx, cabinID, p)
		require.NoError(t, err)
		assert.True(t, result.Available)
		assert.Empty(t, result.Conflicts)
	})

	t.Run("conflicting period lists the collisions", func(t *testing.T) {
		f := newQueriesFixture(t)
		cabinID, in, out := period(t, f)
		f.store.conflicts = []queries.BookingConflictView{
			{ID: uuid.New(), CheckIn: in, CheckOut: out, Status: "booked"},
		}

		result, err := f.queries.CheckAvailability(ctx, cabinID, mustStayPeriod(t, in, out))
		require.NoError(t, err)
		assert.False(t, result.Available)
		assert.Len(t, result.Conflicts, 1)
	})

	t.Run("unknown cabin", func(t *testing.T) {
		f := newQueriesFixture(t)
		_, in, out := period(t, f)
		_, err := f.queries.CheckAvailability(ctx, uuid.New(), mustStayPeriod(t, in, out))
		assert.ErrorIs(t, err, errs.ErrCabinNotFound)
	})

	t.Run("stale availability is never served after invalidation", func(t *testing.T) {
		f := newQueriesFixture(t)
		cabinID, in, out := period(t, f)
		p := mustStayPeriod(t, in, out)

		result, err := f.queries.CheckAvailability(ctx, cabinID, p)
		require.NoError(t, err)
		require.True(t, result.Available)

		// A booking lands for that period; the mutation path invalidates.
		f.store.conflicts = []queries.BookingConflictView{
			{ID: uuid.New(), CheckIn: in, CheckOut: out, Status: "booked"},
		}
		f.cache.InvalidateCabin(cabinID)

		result, err = f.queries.CheckAvailability(ctx, cabinID, p)
		require.NoError(t, err)
		assert.False(t, result.Available, "cached availability must not outlive the mutation")
		assert.Equal(t, 2, f.store.overlapCalls)
	})

	t.Run("repeat check is served from cache", func(t *testing.T) {
		f := newQueriesFixture(t)
		cabinID, in, out := period(t, f)
		p := mustStayPeriod(t, in, out)

		_, err := f.queries.CheckAvailability(ctx, cabinID, p)
		require.NoError(t, err)
		_, err = f.queries.CheckAvailability(ctx, cabinID, p)
		require.NoError(t, err)

		assert.Equal(t, 1, f.store.overlapCalls)
	})
}

func TestAvailableDates(t *testing.T) {
	ctx := context.Background()

	t.Run("occupied windows drop their dates, checkout day stays free", func(t *testing.T) {
		f := newQueriesFixture(t)
		f.store.windows = []queries.StayWindow{
			{
				CheckIn:  time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC),
				CheckOut: time.Date(2026, 6, 13, 12, 0, 0, 0, time.UTC),
			},
		}

		dates, err := f.queries.AvailableDates(ctx, f.b.CabinID)
		require.NoError(t, err)

		free := make(map[string]struct{}, len(dates))
		for _, d := range dates {
			free[d] = struct{}{}
		}

		for _, occupied := range []string{"2026-06-10", "2026-06-11", "2026-06-12"} {
			_, ok := free[occupied]
			assert.False(t, ok, "%s is occupied", occupied)
		}
		for _, open := range []string{"2026-06-09", "2026-06-13", "2026-06-14"} {
			_, ok := free[open]
			assert.True(t, ok, "%s must be free", open)
		}

		// One year horizon minus the three occupied days.
		assert.Len(t, dates, 365-3)
	})

	t.Run("unknown cabin", func(t *testing.T) {
		f := newQueriesFixture(t)
		_, err := f.queries.AvailableDates(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrCabinNotFound)
	})

	t.Run("calendar is cached per cabin", func(t *testing.T) {
		f := newQueriesFixture(t)

		_, err := f.queries.AvailableDates(ctx, f.b.CabinID)
		require.NoError(t, err)
		_, err = f.queries.AvailableDates(ctx, f.b.CabinID)
		require.NoError(t, err)

		assert.Equal(t, 1, f.store.windowCalls)
	})
}

func mustStayPeriod(t *testing.T, in, out time.Time) booking.StayPeriod {
	t.Helper()
	p, err := booking.NewStayPeriod(in, out)
	require.NoError(t, err)
	return p
}
