package components

import (
	"cabin-booking/internal/infra/db"
	"cabin-booking/internal/infra/readstore"
	"cabin-booking/internal/infra/uow"
	"cabin-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// Cross-transaction reads run against the pool; write-side
		// repositories are built per transaction by the unit of work.
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewCabinReadStore,
			fx.As(new(queries.CabinReadStore)),
		),
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
