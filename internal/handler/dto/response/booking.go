package response

import (
	"time"

	"cabin-booking/internal/usecase/commands"
	"cabin-booking/internal/usecase/queries"
	"cabin-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	CabinID         uuid.UUID  `json:"cabinId"`
	CabinName       string     `json:"cabinName"`
	TariffID        uuid.UUID  `json:"tariffId"`
	GuestName       string     `json:"guestName"`
	GuestPhone      string     `json:"guestPhone"`
	GuestEmail      string     `json:"guestEmail,omitempty"`
	CheckIn         time.Time  `json:"checkIn"`
	CheckOut        time.Time  `json:"checkOut"`
	Status          string     `json:"status"`
	TotalCostCents  int64      `json:"totalCostCents"`
	PrepaymentCents int64      `json:"prepaymentCents"`
	TotalPaidCents  int64      `json:"totalPaidCents"`
	RemainingCents  int64      `json:"remainingCents"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
}

type BookingListResponse struct {
	ID             uuid.UUID `json:"id"`
	CabinID        uuid.UUID `json:"cabinId"`
	CabinName      string    `json:"cabinName"`
	GuestName      string    `json:"guestName"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
	Status         string    `json:"status"`
	TotalCostCents int64     `json:"totalCostCents"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ConflictResponse struct {
	ID       uuid.UUID `json:"id"`
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
	Status   string    `json:"status"`
}

type AvailabilityResponse struct {
	Available bool               `json:"available"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

type AvailableDatesResponse struct {
	Dates []string `json:"dates"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              view.ID,
		CabinID:         view.CabinID,
		CabinName:       view.CabinName,
		TariffID:        view.TariffID,
		GuestName:       view.GuestName,
		GuestPhone:      view.GuestPhone,
		GuestEmail:      view.GuestEmail,
		CheckIn:         view.CheckIn,
		CheckOut:        view.CheckOut,
		Status:          view.Status,
		TotalCostCents:  view.TotalCostCents,
		PrepaymentCents: view.PrepaymentCents,
		TotalPaidCents:  view.TotalPaidCents,
		RemainingCents:  view.RemainingCents,
		Notes:           view.Notes,
		CreatedAt:       view.CreatedAt,
		CancelledAt:     view.CancelledAt,
	}
}

func FromBookingList(items []*queries.BookingListItem) []*BookingListResponse {
	out := make([]*BookingListResponse, len(items))
	for i, item := range items {
		resp := &BookingListResponse{}
		// Field names and types line up one to one
		_ = copier.Copy(resp, item)
		out[i] = resp
	}
	return out
}

func FromAvailabilityResult(result *queries.AvailabilityResult) *AvailabilityResponse {
	conflicts := make([]ConflictResponse, len(result.Conflicts))
	for i, c := range result.Conflicts {
		conflicts[i] = ConflictResponse{
			ID:       c.ID,
			CheckIn:  c.CheckIn,
			CheckOut: c.CheckOut,
			Status:   c.Status,
		}
	}
	return &AvailabilityResponse{
		Available: result.Available,
		Conflicts: conflicts,
	}
}

func FromConflictError(conflictErr *commands.ConflictError) []ConflictResponse {
	return fromSharedConflicts(conflictErr.Conflicts)
}

func fromSharedConflicts(conflicts []shared.BookingConflict) []ConflictResponse {
	out := make([]ConflictResponse, len(conflicts))
	for i, c := range conflicts {
		out[i] = ConflictResponse{
			ID:       c.ID,
			CheckIn:  c.CheckIn,
			CheckOut: c.CheckOut,
			Status:   c.Status,
		}
	}
	return out
}
