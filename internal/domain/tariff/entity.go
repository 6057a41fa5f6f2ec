package tariff

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNegativePrice = errors.New("tariff price cannot be negative")

// Tariff is a referenced pricing tier: a name and a per-day price.
type Tariff struct {
	id               uuid.UUID
	name             string
	pricePerDayCents int64
}

func NewTariff(id uuid.UUID, name string, pricePerDayCents int64) (*Tariff, error) {
	if pricePerDayCents < 0 {
		return nil, ErrNegativePrice
	}
	return &Tariff{
		id:               id,
		name:             name,
		pricePerDayCents: pricePerDayCents,
	}, nil
}

func (t *Tariff) ID() uuid.UUID           { return t.id }
func (t *Tariff) Name() string            { return t.name }
func (t *Tariff) PricePerDayCents() int64 { return t.pricePerDayCents }
