package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/dataset"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/log"
	"github.com/02loveslollipop/polar-ec-dashboard/services/sync/internal/config"
	"github.com/02loveslollipop/polar-ec-dashboard/services/sync/internal/db"
	"github.com/02loveslollipop/polar-ec-dashboard/services/sync/internal/utils"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("sync failed: %v", err)
	}
	log.Sync()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := log.Init(cfg.Data.Debug); err != nil {
		return err
	}

	loadedAt := time.Now().UTC().Truncate(time.Second)
	ds, warnings, err := dataset.Load(cfg.Data.Dir, cfg.Data.Options())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warnw("dataset warning", "kind", w.Kind, "condition", w.Condition, "message", w.Message)
	}
	log.Infow("loaded dataset",
		"dir", cfg.Data.Dir,
		"environment_rows", len(ds.Environment),
		"growth_rows", len(ds.Growth),
		"warnings", len(warnings),
	)

	conditions := utils.BuildConditionRows(ds)
	readings := utils.BuildReadingRows(ds)
	plants := utils.BuildPlantRows(ds)

	if cfg.DryRun {
		for _, c := range conditions {
			log.Infow("dry-run: would publish condition", "condition", c.Name, "target_ec", c.TargetEC)
		}
		for _, p := range plants {
			log.Debugw("dry-run: would insert plant", "condition", p.Condition, "seq", p.Seq, "fresh_weight_g", utils.ValuePtrString(p.FreshWeight))
		}
		log.Infof("dry-run: skipping publish (%d readings, %d plants)", len(readings), len(plants))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	if err := db.PublishSnapshot(ctx, pool, conditions, readings, plants, loadedAt); err != nil {
		return err
	}

	log.Infow("published snapshot",
		"conditions", len(utils.ConditionNames(conditions)),
		"readings", len(readings),
		"plants", len(plants),
		"loaded_at", loadedAt.Format(time.RFC3339),
	)
	return nil
}
