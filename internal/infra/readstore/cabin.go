package readstore

import (
	"context"
	"errors"

	"cabin-booking/internal/infra"
	"cabin-booking/internal/infra/db"
	"cabin-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CabinReadStore is the cabin catalog collaborator: existence and display
// name only, never availability truth.
type CabinReadStore struct {
	db db.DBTX
}

func NewCabinReadStore(dbtx db.DBTX) *CabinReadStore {
	return &CabinReadStore{db: dbtx}
}

func (r *CabinReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CabinView, error) {
	var v queries.CabinView
	err := r.db.QueryRow(ctx, `SELECT id, name FROM cabins WHERE id = $1`, id).Scan(&v.ID, &v.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("cabin not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cabin by ID", err)
	}
	return &v, nil
}

func (r *CabinReadStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cabins WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check cabin existence", err)
	}
	return exists, nil
}
