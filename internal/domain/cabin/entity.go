package cabin

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNameRequired = errors.New("cabin name is required")

// Cabin is the bookable resource. Its status column is display-only;
// availability is always computed from the booking set, never from a
// cabin-level flag.
type Cabin struct {
	id   uuid.UUID
	name string
}

func NewCabin(id uuid.UUID, name string) (*Cabin, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	return &Cabin{id: id, name: name}, nil
}

func (c *Cabin) ID() uuid.UUID { return c.id }
func (c *Cabin) Name() string  { return c.name }
