package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql" // registers the "mysql" dialect
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/outdoor-rental/internal/model"
)

const outdoorColumns = "id, name, location, dimensions, monthly_price, photo_url, description, active, created_at, updated_at"

var outdoorSelect = []any{"id", "name", "location", "dimensions", "monthly_price", "photo_url", "description", "active", "created_at", "updated_at"}

// OutdoorRepo encapsulates all queries against the outdoors table.
type OutdoorRepo struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// NewOutdoorRepo constructs an OutdoorRepo with the provided DB handle.
func NewOutdoorRepo(db *sqlx.DB) *OutdoorRepo {
	return &OutdoorRepo{db: db, dialect: goqu.Dialect("mysql")}
}

// List returns outdoors ordered by name, optionally restricted by the
// active flag.
func (r *OutdoorRepo) List(ctx context.Context, f model.OutdoorFilter) ([]model.Outdoor, error) {
	ds := r.dialect.From("outdoors").Select(outdoorSelect...).Order(goqu.C("name").Asc(), goqu.C("id").Asc())
	if f.Active != nil {
		// tinyint column; a Go bool would render as IS TRUE
		ds = ds.Where(goqu.C("active").Eq(boolToInt(*f.Active)))
	}
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	out := make([]model.Outdoor, 0)
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches an outdoor or returns ErrOutdoorNotFound.
func (r *OutdoorRepo) GetByID(ctx context.Context, id uint64) (*model.Outdoor, error) {
	return getOutdoor(ctx, r.db, "SELECT "+outdoorColumns+" FROM outdoors WHERE id = ?", id)
}

// Create inserts o and refreshes it from the stored row so generated ID and
// timestamps are populated.
func (r *OutdoorRepo) Create(ctx context.Context, o *model.Outdoor) error {
	const q = `INSERT INTO outdoors (name, location, dimensions, monthly_price, photo_url, description, active)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, o.Name, o.Location, o.Dimensions, o.MonthlyPrice, o.PhotoURL, o.Description, o.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*o = *stored
	return nil
}

// Update replaces every editable column of the outdoor with o's values.
// MySQL reports zero affected rows for a no-op update, so existence is
// decided by the follow-up read.
func (r *OutdoorRepo) Update(ctx context.Context, o *model.Outdoor) error {
	const q = `UPDATE outdoors
	           SET name = ?, location = ?, dimensions = ?, monthly_price = ?, photo_url = ?, description = ?, active = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, o.Name, o.Location, o.Dimensions, o.MonthlyPrice, o.PhotoURL, o.Description, o.Active, o.ID); err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, o.ID)
	if err != nil {
		return err
	}
	*o = *stored
	return nil
}

// Delete removes the outdoor; its reservations go with it through the
// foreign key cascade.
func (r *OutdoorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM outdoors WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOutdoorNotFound
	}
	return nil
}

// lockOutdoorTx reads the outdoor row with an exclusive lock held until tx
// ends.
func lockOutdoorTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Outdoor, error) {
	return getOutdoor(ctx, tx, "SELECT "+outdoorColumns+" FROM outdoors WHERE id = ? FOR UPDATE", id)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func getOutdoor(ctx context.Context, q sqlx.QueryerContext, query string, id uint64) (*model.Outdoor, error) {
	var o model.Outdoor
	if err := sqlx.GetContext(ctx, q, &o, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOutdoorNotFound
		}
		return nil, err
	}
	return &o, nil
}
