package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
)

const listMethods = `
SELECT name, category, prescription_required, method_type, duration, efficacy, notes, sort_order
FROM contraceptive_methods
ORDER BY sort_order
`

// MethodRow mirrors one contraceptive_methods row.
type MethodRow struct {
	Name                 string      `db:"name"`
	Category             string      `db:"category"`
	PrescriptionRequired bool        `db:"prescription_required"`
	MethodType           pgtype.Text `db:"method_type"`
	Duration             pgtype.Text `db:"duration"`
	Efficacy             string      `db:"efficacy"`
	Notes                string      `db:"notes"`
	SortOrder            int32       `db:"sort_order"`
}

// Querier is the subset of pgxpool.Pool used by Queries.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Queries runs the catalog SQL against a pool.
type Queries struct {
	db Querier
}

func New(db Querier) *Queries {
	return &Queries{db: db}
}

// ListMethods returns every method in sort order.
func (q *Queries) ListMethods(ctx context.Context) ([]MethodRow, error) {
	rows, err := q.db.Query(ctx, listMethods)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[MethodRow])
}

type methodStore interface {
	ListMethods(ctx context.Context) ([]MethodRow, error)
}

// ErrNoMethods means the table exists but holds no rows, usually because the
// seed migration has not run.
var ErrNoMethods = errors.New("contraceptive_methods is empty")

// MethodRepository loads the reference table from Postgres.
type MethodRepository struct {
	store methodStore
}

func NewMethodRepository(store methodStore) *MethodRepository {
	return &MethodRepository{store: store}
}

// List returns the methods in catalog order.
func (r *MethodRepository) List(ctx context.Context) ([]catalog.Method, error) {
	rows, err := r.store.ListMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list methods: %w", err)
	}
	out := make([]catalog.Method, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.Method{
			Name:                 row.Name,
			Category:             row.Category,
			PrescriptionRequired: row.PrescriptionRequired,
			Type:                 row.MethodType.String,
			Duration:             row.Duration.String,
			Efficacy:             row.Efficacy,
			Notes:                row.Notes,
		})
	}
	return out, nil
}

// LoadCatalog builds a validated catalog from the table.
func (r *MethodRepository) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	methods, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(methods) == 0 {
		return nil, ErrNoMethods
	}
	cat, err := catalog.New(methods)
	if err != nil {
		return nil, fmt.Errorf("build catalog from postgres: %w", err)
	}
	return cat, nil
}
