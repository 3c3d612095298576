package provider

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	pgSelectSignalSQL = `SELECT value, scale, confidence, freshness_days
		FROM signal
		WHERE company = $1 AND metric = $2 AND horizon = $3 AND as_of <= $4
		ORDER BY as_of DESC
		LIMIT 1
	`

	pgSelectRegimeSQL = `SELECT regime, weight
		FROM regime_weight
		WHERE horizon = $1
		  AND as_of = (SELECT COALESCE(MAX(as_of), '') FROM regime_weight WHERE horizon = $2 AND as_of <= $3)
	`

	pgInsertSignalSQL = `INSERT INTO signal
		(company, metric, horizon, as_of, value, scale, confidence, freshness_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company, metric, horizon, as_of) DO UPDATE SET
			value = excluded.value,
			scale = excluded.scale,
			confidence = excluded.confidence,
			freshness_days = excluded.freshness_days
	`

	pgInsertRegimeSQL = `INSERT INTO regime_weight (horizon, as_of, regime, weight)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (horizon, as_of, regime) DO UPDATE SET weight = excluded.weight
	`
)

// OpenPostgres connects to a shared postgres signal store. The schema is
// applied on open (idempotent DDL), so a fresh database is usable
// immediately.
func OpenPostgres(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres connection string not specified")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres connection")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to reach postgres")
	}
	store, err := initStore(db, queries{
		selectSignal: pgSelectSignalSQL,
		selectRegime: pgSelectRegimeSQL,
		insertSignal: pgInsertSignalSQL,
		insertRegime: pgInsertRegimeSQL,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
