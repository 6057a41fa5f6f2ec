package repository

import (
	"context"
	"errors"

	"cabin-booking/internal/infra"
	"cabin-booking/internal/infra/db"
	"cabin-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CabinRepository struct {
	db db.DBTX
}

func NewCabinRepository(dbtx db.DBTX) *CabinRepository {
	return &CabinRepository{db: dbtx}
}

const lockCabinSQL = `
SELECT id, name
FROM cabins
WHERE id = $1
FOR UPDATE
`

// LockByID serializes all writers touching this cabin's booking set on the
// cabin row itself, so two concurrent creates for the same cabin cannot both
// pass the availability re-check.
func (r *CabinRepository) LockByID(ctx context.Context, id uuid.UUID) (*shared.CabinSnapshot, error) {
	var snap shared.CabinSnapshot
	err := r.db.QueryRow(ctx, lockCabinSQL, id).Scan(&snap.ID, &snap.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("cabin not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock cabin", err)
	}
	return &snap, nil
}
