package booking

// Status is the unified booking lifecycle vocabulary. The persisted values
// are lowercase snake_case to match the bookings.status column.
type Status string

const (
	StatusBooked     Status = "booked"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

// allowedTransitions is the single source of truth for the lifecycle:
// booked -> checked_in -> checked_out, with cancellation possible from any
// non-terminal state. checked_out and cancelled are terminal.
var allowedTransitions = map[Status][]Status{
	StatusBooked:     {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut, StatusCancelled},
	StatusCheckedOut: {},
	StatusCancelled:  {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// Blocking reports whether a booking in this status occupies its cabin for
// availability purposes. Cancelled and checked-out stays release the slot.
func (s Status) Blocking() bool {
	return s == StatusBooked || s == StatusCheckedIn
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// BlockingStatuses lists the statuses that count toward the overlap
// invariant, for use in persistence-layer filters.
func BlockingStatuses() []Status {
	return []Status{StatusBooked, StatusCheckedIn}
}
