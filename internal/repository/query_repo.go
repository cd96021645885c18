package repository

import (
	"context"
	"fmt"

	"github.com/querytube/insight-services/internal/database"
	"github.com/querytube/insight-services/internal/models"
)

// queryRepo is the concrete implementation of QueryRepository
type queryRepo struct {
	db *database.DB
}

// NewQueryRepo creates a new query repository
func NewQueryRepo(db *database.DB) QueryRepository {
	return &queryRepo{db: db}
}

// Query acquires a connection, runs the single statement in query and
// releases the connection on every path.
func (r *queryRepo) Query(ctx context.Context, query string) ([]models.Row, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	// A prepared statement holds exactly one statement on mysql and
	// postgres; driver errors are returned as the driver reports them.
	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	results := make([]models.Row, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(models.Row, len(columns))
		for i, col := range columns {
			// drivers hand back text and decimals as []byte
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return results, nil
}

func (r *queryRepo) Ping(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

func (r *queryRepo) Driver() string {
	return r.db.Driver()
}
