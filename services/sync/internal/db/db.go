package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/polar-ec-dashboard/services/sync/internal/models"
)

const schemaSQL = `
CREATE SCHEMA IF NOT EXISTS ecdash;

CREATE TABLE IF NOT EXISTS ecdash.conditions (
    name        text PRIMARY KEY,
    target_ec   double precision NOT NULL,
    updated_at  timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS ecdash.environment_readings (
    condition    text NOT NULL REFERENCES ecdash.conditions(name),
    seq          integer NOT NULL,
    ts           timestamptz,
    temperature  double precision,
    humidity     double precision,
    ph           double precision,
    ec           double precision,
    loaded_at    timestamptz NOT NULL,
    PRIMARY KEY (condition, seq)
);

CREATE TABLE IF NOT EXISTS ecdash.growth_measurements (
    condition        text NOT NULL REFERENCES ecdash.conditions(name),
    seq              integer NOT NULL,
    fresh_weight_g   double precision,
    leaf_count       integer,
    shoot_length_mm  double precision,
    root_length_mm   double precision,
    metrics          jsonb,
    loaded_at        timestamptz NOT NULL,
    PRIMARY KEY (condition, seq)
);
`

// EnsureSchema creates the snapshot tables when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PublishSnapshot replaces the stored rows of every given condition with the
// new snapshot in one transaction.
func PublishSnapshot(
	ctx context.Context,
	pool *pgxpool.Pool,
	conditions []models.ConditionRow,
	readings []models.ReadingRow,
	plants []models.PlantRow,
	loadedAt time.Time,
) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := upsertConditions(ctx, tx, conditions); err != nil {
		return fmt.Errorf("upsert conditions: %w", err)
	}

	names := make([]string, 0, len(conditions))
	for _, c := range conditions {
		names = append(names, c.Name)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM ecdash.environment_readings WHERE condition = ANY($1)`, names); err != nil {
		return fmt.Errorf("clear readings: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM ecdash.growth_measurements WHERE condition = ANY($1)`, names); err != nil {
		return fmt.Errorf("clear measurements: %w", err)
	}

	if err := insertReadings(ctx, tx, readings, loadedAt); err != nil {
		return fmt.Errorf("insert readings: %w", err)
	}
	if err := insertPlants(ctx, tx, plants, loadedAt); err != nil {
		return fmt.Errorf("insert measurements: %w", err)
	}

	return tx.Commit(ctx)
}

func upsertConditions(ctx context.Context, tx pgx.Tx, conditions []models.ConditionRow) error {
	if len(conditions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO ecdash.conditions (name, target_ec, updated_at)
VALUES ($1,$2,NOW())
ON CONFLICT (name) DO UPDATE
SET target_ec = EXCLUDED.target_ec,
    updated_at = NOW()`

	for _, c := range conditions {
		batch.Queue(query, c.Name, c.TargetEC)
	}
	return sendBatch(ctx, tx, batch, len(conditions))
}

func insertReadings(ctx context.Context, tx pgx.Tx, readings []models.ReadingRow, loadedAt time.Time) error {
	if len(readings) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO ecdash.environment_readings (condition, seq, ts, temperature, humidity, ph, ec, loaded_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	for _, r := range readings {
		batch.Queue(query, r.Condition, r.Seq, r.TS, r.Temperature, r.Humidity, r.PH, r.EC, loadedAt)
	}
	return sendBatch(ctx, tx, batch, len(readings))
}

func insertPlants(ctx context.Context, tx pgx.Tx, plants []models.PlantRow, loadedAt time.Time) error {
	if len(plants) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO ecdash.growth_measurements (condition, seq, fresh_weight_g, leaf_count, shoot_length_mm, root_length_mm, metrics, loaded_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	for _, p := range plants {
		batch.Queue(query, p.Condition, p.Seq, p.FreshWeight, p.LeafCount, p.ShootLength, p.RootLength, p.Metrics, loadedAt)
	}
	return sendBatch(ctx, tx, batch, len(plants))
}

func sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, n int) error {
	res := tx.SendBatch(ctx, batch)
	for i := 0; i < n; i++ {
		if _, err := res.Exec(); err != nil {
			res.Close()
			return err
		}
	}
	return res.Close()
}
