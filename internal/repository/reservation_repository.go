package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/outdoor-rental/internal/model"
)

const reservationColumns = `id, outdoor_id, start_date, end_date, status, customer_name, customer_contact,
	customer_email, notes, total_value, created_at, updated_at`

// overlapQuery selects reservations sharing at least one day with [?, ?]:
// start_date <= end AND end_date >= start.
const overlapQuery = "SELECT " + reservationColumns + ` FROM reservations
	WHERE outdoor_id = ? AND status = ? AND start_date <= ? AND end_date >= ?
	ORDER BY start_date`

// ReservationRepo provides access to the reservations ledger. Rows are
// inserted only through WithOutdoorLock and never updated.
type ReservationRepo struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sqlx.DB) *ReservationRepo {
	return &ReservationRepo{db: db, dialect: goqu.Dialect("mysql")}
}

// ReservationTx is the ledger as seen from inside WithOutdoorLock.
type ReservationTx interface {
	FindOverlapping(ctx context.Context, outdoorID uint64, start, end model.Date) ([]model.Reservation, error)
	Insert(ctx context.Context, res *model.Reservation) error
}

// FindOverlapping returns the outdoor's reservations overlapping [start, end].
func (r *ReservationRepo) FindOverlapping(ctx context.Context, outdoorID uint64, start, end model.Date) ([]model.Reservation, error) {
	return findOverlapping(ctx, r.db, outdoorID, start, end)
}

// ListIntersecting returns reservations intersecting [start, end] joined with
// their outdoor, ordered by start date then outdoor name. A non-nil
// outdoorID limits the listing to one outdoor.
func (r *ReservationRepo) ListIntersecting(ctx context.Context, start, end model.Date, outdoorID *uint64) ([]model.ReservationDetail, error) {
	ds := r.dialect.From(goqu.T("reservations").As("r")).
		Join(goqu.T("outdoors").As("o"), goqu.On(goqu.I("o.id").Eq(goqu.I("r.outdoor_id")))).
		Select(
			goqu.I("r.id"), goqu.I("r.outdoor_id"), goqu.I("r.start_date"), goqu.I("r.end_date"),
			goqu.I("r.status"), goqu.I("r.customer_name"), goqu.I("r.customer_contact"),
			goqu.I("r.customer_email"), goqu.I("r.notes"), goqu.I("r.total_value"),
			goqu.I("r.created_at"), goqu.I("r.updated_at"),
			goqu.I("o.name").As("outdoor_name"),
			goqu.I("o.location").As("outdoor_location"),
			goqu.I("o.monthly_price").As("outdoor_monthly_price"),
		).
		Where(
			goqu.I("r.status").Eq(model.StatusOccupied),
			goqu.I("r.start_date").Lte(end.String()),
			goqu.I("r.end_date").Gte(start.String()),
		).
		Order(goqu.I("r.start_date").Asc(), goqu.I("o.name").Asc(), goqu.I("r.id").Asc())
	if outdoorID != nil {
		ds = ds.Where(goqu.I("r.outdoor_id").Eq(*outdoorID))
	}
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	out := make([]model.ReservationDetail, 0)
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByOutdoor returns every reservation of one outdoor, most recent start first.
func (r *ReservationRepo) ListByOutdoor(ctx context.Context, outdoorID uint64) ([]model.Reservation, error) {
	q := "SELECT " + reservationColumns + " FROM reservations WHERE outdoor_id = ? ORDER BY start_date DESC, id DESC"
	out := make([]model.Reservation, 0)
	if err := r.db.SelectContext(ctx, &out, q, outdoorID); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one reservation or returns ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	return getReservation(ctx, r.db, "SELECT "+reservationColumns+" FROM reservations WHERE id = ?", id)
}

// Delete removes a reservation and returns the row as it was. The read and
// the delete share one transaction so the returned row is exactly what was
// removed.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) (*model.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := getReservation(ctx, tx, "SELECT "+reservationColumns+" FROM reservations WHERE id = ? FOR UPDATE", id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return res, nil
}

// WithOutdoorLock runs fn in a READ COMMITTED transaction that holds an
// exclusive lock on the outdoor's row. Every writer of the same outdoor
// queues on that lock, so an overlap check made inside fn stays true until
// the transaction commits, even across server instances. fn's error rolls
// the transaction back; ErrOutdoorNotFound is returned when the outdoor
// does not exist.
func (r *ReservationRepo) WithOutdoorLock(ctx context.Context, outdoorID uint64, fn func(ctx context.Context, outdoor model.Outdoor, tx ReservationTx) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin reservation tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	outdoor, err := lockOutdoorTx(ctx, tx, outdoorID)
	if err != nil {
		return err
	}
	if err := fn(ctx, *outdoor, &reservationTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reservation tx: %w", err)
	}
	committed = true
	return nil
}

type reservationTx struct {
	tx *sqlx.Tx
}

func (t *reservationTx) FindOverlapping(ctx context.Context, outdoorID uint64, start, end model.Date) ([]model.Reservation, error) {
	return findOverlapping(ctx, t.tx, outdoorID, start, end)
}

// Insert stores res and reloads it so ID and timestamps are filled in.
func (t *reservationTx) Insert(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (outdoor_id, start_date, end_date, status, customer_name, customer_contact, customer_email, notes, total_value)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := t.tx.ExecContext(ctx, q,
		res.OutdoorID, res.StartDate, res.EndDate, res.Status,
		res.CustomerName, res.CustomerContact, res.CustomerEmail, res.Notes, res.TotalValue)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := getReservation(ctx, t.tx, "SELECT "+reservationColumns+" FROM reservations WHERE id = ?", uint64(id))
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

func findOverlapping(ctx context.Context, q sqlx.QueryerContext, outdoorID uint64, start, end model.Date) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	if err := sqlx.SelectContext(ctx, q, &out, overlapQuery, outdoorID, model.StatusOccupied, end, start); err != nil {
		return nil, err
	}
	return out, nil
}

func getReservation(ctx context.Context, q sqlx.QueryerContext, query string, id uint64) (*model.Reservation, error) {
	var res model.Reservation
	if err := sqlx.GetContext(ctx, q, &res, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}
