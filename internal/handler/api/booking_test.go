//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cabin-booking/internal/domain/booking"
	"cabin-booking/internal/handler/api"
	"cabin-booking/internal/pkg/config"
	"cabin-booking/internal/pkg/errs"
	"cabin-booking/internal/usecase/commands"
	"cabin-booking/internal/usecase/queries"
	"cabin-booking/internal/usecase/shared"
	"cabin-booking/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type fakeBookingCommands struct {
	createView     *queries.BookingView
	createErr      error
	transitionView *queries.BookingView
	transitionErr  error
	cancelErr      error

	lastCreateParams commands.CreateBookingParams
	lastTarget       booking.Status
	lastNote         *string
}

func (f *fakeBookingCommands) CreateBooking(_ context.Context, params commands.CreateBookingParams) (*queries.BookingView, error) {
	f.lastCreateParams = params
	return f.createView, f.createErr
}

func (f *fakeBookingCommands) TransitionStatus(_ context.Context, _ uuid.UUID, target booking.Status, note *string) (*queries.BookingView, error) {
	f.lastTarget = target
	f.lastNote = note
	return f.transitionView, f.transitionErr
}

func (f *fakeBookingCommands) CancelBooking(context.Context, uuid.UUID) error {
	return f.cancelErr
}

type fakeBookingQueriesAPI struct {
	view         *queries.BookingView
	viewErr      error
	items        []*queries.BookingListItem
	availability *queries.AvailabilityResult
	availErr     error
	dates        []string
}

func (f *fakeBookingQueriesAPI) GetByID(context.Context, uuid.UUID) (*queries.BookingView, error) {
	return f.view, f.viewErr
}

func (f *fakeBookingQueriesAPI) List(context.Context, *uuid.UUID) ([]*queries.BookingListItem, error) {
	return f.items, nil
}

func (f *fakeBookingQueriesAPI) CheckAvailability(context.Context, uuid.UUID, booking.StayPeriod) (*queries.AvailabilityResult, error) {
	return f.availability, f.availErr
}

func (f *fakeBookingQueriesAPI) AvailableDates(context.Context, uuid.UUID) ([]string, error) {
	return f.dates, nil
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *fakeBookingCommands
	queries  *fakeBookingQueriesAPI
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.commands = &fakeBookingCommands{}
	s.queries = &fakeBookingQueriesAPI{}

	cfg := config.BookingConfig{CheckInHour: 14, CheckOutHour: 12, TimeZone: "Europe/Moscow"}
	handler := api.NewBookingHandler(s.commands, s.queries, cfg)

	s.router.POST("/bookings", handler.CreateBooking)
	s.router.GET("/bookings/:id", handler.GetBooking)
	s.router.GET("/bookings/check-availability", handler.CheckAvailability)
	s.router.PUT("/bookings/:id/status", handler.TransitionStatus)
	s.router.DELETE("/bookings/:id", handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	s.Run("created", func() {
		b := builder.NewBookingBuilder()
		s.commands.createView = b.BuildView()
		s.commands.createErr = nil

		w := s.doJSON(http.MethodPost, "/bookings", b.BuildCreateRequestDTO())

		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), b.GuestName)
		s.Equal(b.CabinID, s.commands.lastCreateParams.CabinID)
	})

	s.Run("conflict carries the collisions", func() {
		b := builder.NewBookingBuilder()
		s.commands.createView = nil
		s.commands.createErr = &commands.ConflictError{
			Conflicts: []shared.BookingConflict{
				{ID: uuid.New(), CheckIn: b.CheckIn, CheckOut: b.CheckOut, Status: "booked"},
			},
		}

		w := s.doJSON(http.MethodPost, "/bookings", b.BuildCreateRequestDTO())

		s.Equal(http.StatusConflict, w.Code)
		s.Contains(w.Body.String(), "detail")
		s.Contains(w.Body.String(), "booked")
	})

	s.Run("unknown cabin", func() {
		b := builder.NewBookingBuilder()
		s.commands.createErr = errs.Mark(errs.New("no row"), errs.ErrCabinNotFound)

		w := s.doJSON(http.MethodPost, "/bookings", b.BuildCreateRequestDTO())
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("malformed dates", func() {
		b := builder.NewBookingBuilder()
		req := b.BuildCreateRequestDTO()
		req.CheckIn = "next tuesday"

		w := s.doJSON(http.MethodPost, "/bookings", req)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("missing required fields", func() {
		w := s.doJSON(http.MethodPost, "/bookings", map[string]any{"cabin_id": uuid.New()})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("found", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.queries.view = view
		s.queries.viewErr = nil

		w := s.doJSON(http.MethodGet, "/bookings/"+view.ID.String(), nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("not found", func() {
		s.queries.view = nil
		s.queries.viewErr = errs.Mark(errs.New("no row"), errs.ErrBookingNotFound)

		w := s.doJSON(http.MethodGet, "/bookings/"+uuid.NewString(), nil)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("malformed id", func() {
		w := s.doJSON(http.MethodGet, "/bookings/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestCheckAvailability() {
	s.Run("available", func() {
		s.queries.availability = &queries.AvailabilityResult{Available: true}

		w := s.doJSON(http.MethodGet,
			"/bookings/check-availability?cabin_id="+uuid.NewString()+
				"&check_in=2026-07-10&check_out=2026-07-13", nil)

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"available":true`)
	})

	s.Run("missing cabin id", func() {
		w := s.doJSON(http.MethodGet,
			"/bookings/check-availability?check_in=2026-07-10&check_out=2026-07-13", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown cabin", func() {
		s.queries.availability = nil
		s.queries.availErr = errs.Mark(errs.New("no row"), errs.ErrCabinNotFound)

		w := s.doJSON(http.MethodGet,
			"/bookings/check-availability?cabin_id="+uuid.NewString()+
				"&check_in=2026-07-10&check_out=2026-07-13", nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestTransitionStatus() {
	s.Run("checked in", func() {
		view := builder.NewBookingBuilder().BuildView()
		view.Status = booking.StatusCheckedIn.String()
		s.commands.transitionView = view
		s.commands.transitionErr = nil

		w := s.doJSON(http.MethodPut, "/bookings/"+view.ID.String()+"/status",
			map[string]any{"status": "checked_in"})

		s.Equal(http.StatusOK, w.Code)
		s.Equal(booking.StatusCheckedIn, s.commands.lastTarget)
	})

	s.Run("unknown status value", func() {
		w := s.doJSON(http.MethodPut, "/bookings/"+uuid.NewString()+"/status",
			map[string]any{"status": "teleported"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("illegal edge", func() {
		s.commands.transitionView = nil
		s.commands.transitionErr = errs.Mark(booking.ErrInvalidTransition, errs.ErrInvalidTransition)

		w := s.doJSON(http.MethodPut, "/bookings/"+uuid.NewString()+"/status",
			map[string]any{"status": "checked_out"})
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	s.Run("cancelled", func() {
		s.commands.cancelErr = nil
		w := s.doJSON(http.MethodDelete, "/bookings/"+uuid.NewString(), nil)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("already terminal", func() {
		s.commands.cancelErr = errs.Mark(booking.ErrInvalidTransition, errs.ErrInvalidTransition)
		w := s.doJSON(http.MethodDelete, "/bookings/"+uuid.NewString(), nil)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}
