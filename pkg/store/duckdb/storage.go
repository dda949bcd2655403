package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const RunsTableSchema = `
	CREATE TABLE IF NOT EXISTS runs (
		id VARCHAR NOT NULL,
		property VARCHAR NOT NULL,
		range_start DATE NOT NULL,
		range_end DATE NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	);
`

const TrafficTableSchema = `
	CREATE TABLE IF NOT EXISTS traffic_rows (
		run_id VARCHAR NOT NULL,
		axis VARCHAR NOT NULL,
		dimension VARCHAR NOT NULL,
		seq INTEGER NOT NULL,
		sessions DOUBLE,
		total_users DOUBLE,
		new_users DOUBLE,
		conversions DOUBLE,
		total_revenue DOUBLE,
		engagement_rate DOUBLE,
		bounce_rate DOUBLE,
		avg_session_duration DOUBLE
	);
`

var bootQueries = []string{
	RunsTableSchema,
	TrafficTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
