package readstore

import (
	"context"
	"errors"

	"cabin-booking/internal/infra"
	"cabin-booking/internal/infra/db"
	"cabin-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TariffReadStore is the tariff catalog collaborator: price lookup only.
type TariffReadStore struct {
	db db.DBTX
}

func NewTariffReadStore(dbtx db.DBTX) *TariffReadStore {
	return &TariffReadStore{db: dbtx}
}

func (r *TariffReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.TariffSnapshot, error) {
	var snap shared.TariffSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, name, price_per_day_cents FROM tariffs WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.Name, &snap.PricePerDayCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("tariff not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find tariff by ID", err)
	}
	return &snap, nil
}
