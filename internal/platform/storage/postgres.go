package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ecomsimply/price-truth/internal/platform/models"
	"github.com/ecomsimply/price-truth/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/ecomsimply/price-truth/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// Postgres is storage for price truth records and their source observations.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// truthRow is the query destination for a price truth record with its
// position-ordered source rows.
type truthRow struct {
	pgmodels.PriceTruth

	Sources []pgmodels.PriceSource
}

// GetPriceTruth returns the record stored for sku, or nil when there is none.
func (p Postgres) GetPriceTruth(ctx context.Context, sku string) (*models.PriceTruth, error) {
	return p.findOne(ctx, table.PriceTruth.Sku.EQ(pg.String(sku)))
}

// SearchByQuery returns the record stored for the free-text query, or nil when there is none.
func (p Postgres) SearchByQuery(ctx context.Context, query string) (*models.PriceTruth, error) {
	return p.findOne(ctx, table.PriceTruth.Query.EQ(pg.String(query)))
}

// UpsertPriceTruth replaces the record stored under the record's lookup key
// together with all its source rows.
func (p Postgres) UpsertPriceTruth(ctx context.Context, truth *models.PriceTruth) error {
	dbTruth := toDBPriceTruth(truth)

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		columnList := table.PriceTruth.AllColumns.Except(table.PriceTruth.ID)

		excludedExpressions := make([]pg.Expression, 0, len(columnList)) // converting to expression
		for _, col := range table.PriceTruth.EXCLUDED.AllColumns.Except(table.PriceTruth.ID) {
			excludedExpressions = append(excludedExpressions, col)
		}

		err := table.PriceTruth.INSERT(columnList).
			MODEL(dbTruth).
			ON_CONFLICT(table.PriceTruth.LookupKey).
			DO_UPDATE(
				pg.SET(
					columnList.SET(pg.ROW(excludedExpressions...)),
				),
			).
			RETURNING(table.PriceTruth.ID).
			QueryContext(ctx, tx, dbTruth)
		if err != nil {
			return fmt.Errorf("can't upsert price truth into database: %w", err)
		}

		// the round's sources are replaced as a whole
		_, err = table.PriceSource.DELETE().
			WHERE(table.PriceSource.TruthID.EQ(pg.Int32(dbTruth.ID))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't delete previous price sources from database: %w", err)
		}

		dbSources := toDBPriceSources(dbTruth.ID, truth.Sources)
		if len(dbSources) == 0 {
			return nil
		}

		_, err = table.PriceSource.INSERT(table.PriceSource.AllColumns.Except(table.PriceSource.ID)).
			MODELS(dbSources).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't insert price sources into database: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("can't upsert price truth: %w", err)
	}

	return nil
}

// GetStaleRecords returns all records whose updated_at plus ttlHours has elapsed.
func (p Postgres) GetStaleRecords(ctx context.Context, ttlHours int) ([]models.PriceTruth, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(ttlHours) * time.Hour)

	var rows []truthRow
	err := selectTruths().
		WHERE(table.PriceTruth.UpdatedAt.LT(pg.TimestampzT(cutoff))).
		QueryContext(ctx, p.db, &rows)
	if err != nil {
		return nil, fmt.Errorf("can't get stale records from database: %w", err)
	}

	stale := make([]models.PriceTruth, 0, len(rows))
	for ix := range rows {
		truth, err := fromDBPriceTruth(&rows[ix].PriceTruth, rows[ix].Sources)
		if err != nil {
			return nil, err
		}
		stale = append(stale, *truth)
	}

	return stale, nil
}

// EnsureIndexes creates lookup and staleness indexes if they don't exist yet.
func (p Postgres) EnsureIndexes(ctx context.Context) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS price_truth_lookup_key_idx ON price_truth (lookup_key)`,
		`CREATE INDEX IF NOT EXISTS price_truth_sku_idx ON price_truth (sku)`,
		`CREATE INDEX IF NOT EXISTS price_truth_query_idx ON price_truth (query)`,
		`CREATE INDEX IF NOT EXISTS price_truth_updated_at_idx ON price_truth (updated_at)`,
	}

	for _, statement := range statements {
		if _, err := p.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("can't create index: %w", err)
		}
	}

	return nil
}

func (p Postgres) findOne(ctx context.Context, condition pg.BoolExpression) (*models.PriceTruth, error) {
	var row truthRow
	err := selectTruths().
		WHERE(condition).
		QueryContext(ctx, p.db, &row)

	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("can't get price truth from database: %w", err)
	}

	return fromDBPriceTruth(&row.PriceTruth, row.Sources)
}

func selectTruths() pg.SelectStatement {
	return pg.SELECT(table.PriceTruth.AllColumns, table.PriceSource.AllColumns).
		FROM(table.PriceTruth.LEFT_JOIN(
			table.PriceSource,
			table.PriceSource.TruthID.EQ(table.PriceTruth.ID),
		)).
		ORDER_BY(table.PriceTruth.ID.ASC(), table.PriceSource.Position.ASC())
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
