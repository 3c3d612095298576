package provider

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	sqliteSelectSignalSQL = `SELECT value, scale, confidence, freshness_days
		FROM signal
		WHERE company = ? AND metric = ? AND horizon = ? AND as_of <= ?
		ORDER BY as_of DESC
		LIMIT 1
	`

	sqliteSelectRegimeSQL = `SELECT regime, weight
		FROM regime_weight
		WHERE horizon = ?
		  AND as_of = (SELECT COALESCE(MAX(as_of), '') FROM regime_weight WHERE horizon = ? AND as_of <= ?)
	`

	sqliteInsertSignalSQL = `INSERT INTO signal
		(company, metric, horizon, as_of, value, scale, confidence, freshness_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (company, metric, horizon, as_of) DO UPDATE SET
			value = excluded.value,
			scale = excluded.scale,
			confidence = excluded.confidence,
			freshness_days = excluded.freshness_days
	`

	sqliteInsertRegimeSQL = `INSERT INTO regime_weight (horizon, as_of, regime, weight)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (horizon, as_of, regime) DO UPDATE SET weight = excluded.weight
	`
)

// OpenSQLite opens (and if needed creates) a local sqlite signal store.
func OpenSQLite(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite path not specified")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", path)
	}
	store, err := initStore(db, queries{
		selectSignal: sqliteSelectSignalSQL,
		selectRegime: sqliteSelectRegimeSQL,
		insertSignal: sqliteInsertSignalSQL,
		insertRegime: sqliteInsertRegimeSQL,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
