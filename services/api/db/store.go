package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps read access to the snapshot tables written by the sync job.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PublishedCondition summarizes what the last sync stored for one condition.
type PublishedCondition struct {
	Name     string     `json:"name"`
	TargetEC float64    `json:"target_ec"`
	Readings int        `json:"readings"`
	Plants   int        `json:"plants"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

const publishedConditionsSQL = `
    SELECT c.name, c.target_ec,
           (SELECT COUNT(*) FROM ecdash.environment_readings r WHERE r.condition = c.name) AS readings,
           (SELECT COUNT(*) FROM ecdash.growth_measurements g WHERE g.condition = c.name) AS plants,
           GREATEST(
               (SELECT MAX(loaded_at) FROM ecdash.environment_readings r WHERE r.condition = c.name),
               (SELECT MAX(loaded_at) FROM ecdash.growth_measurements g WHERE g.condition = c.name)
           ) AS loaded_at
    FROM ecdash.conditions c
    ORDER BY c.target_ec, c.name
`

// PublishedConditions returns per-condition row counts of the stored snapshot.
func (s *Store) PublishedConditions(ctx context.Context) ([]PublishedCondition, error) {
	rows, err := s.pool.Query(ctx, publishedConditionsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PublishedCondition, 0)
	for rows.Next() {
		var pc PublishedCondition
		if err := rows.Scan(
			&pc.Name,
			&pc.TargetEC,
			&pc.Readings,
			&pc.Plants,
			&pc.LoadedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}
