// Package refinery reconciles raw tabular extracts from two independent
// source systems into one cleansed, de-duplicated, semantically standardized
// dataset per entity.
//
// Each of the six entities runs its own pipeline: survivorship selection
// collapses duplicates to one record per natural key, field normalization
// maps raw codes onto closed canonical vocabularies, value repair derives
// missing or invalid fields from their siblings, and versioned entities get
// contiguous validity intervals. Pipelines are independent, idempotent, and
// replace their output in full on every run.
//
// Example usage:
//
//	ref, err := refinery.New(
//	    refinery.WithSources(sources.Set{
//	        Customers: sources.CustomerCSV("extracts/cust_info.csv"),
//	        Locations: sources.LocationCSV("extracts/loc_a101.csv"),
//	    }),
//	    refinery.WithWarehouse(warehouse.NewCSVDir("silver")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := ref.Run(ctx)
package refinery

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lodeworks/refinery/pkg/errors"
	"github.com/lodeworks/refinery/pkg/logging"
	"github.com/lodeworks/refinery/pkg/pipeline"
	"github.com/lodeworks/refinery/pkg/sources"
	"github.com/lodeworks/refinery/pkg/tables"
	"github.com/lodeworks/refinery/pkg/warehouse"
)

// Refinery runs the per-entity reconciliation pipelines.
type Refinery interface {
	// Run executes the pipeline of every configured entity and returns one
	// result per pipeline. Pipelines are independent: a failed pipeline is
	// reported on its result (and in the joined error) but never stops or
	// taints its siblings.
	Run(ctx context.Context) ([]pipeline.Result, error)
}

// refinery is the internal implementation of the Refinery interface.
type refinery struct {
	config *config
}

// New creates a new Refinery instance with the given options.
func New(opts ...Option) (Refinery, error) {
	r := &refinery{
		config: defaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(r.config); err != nil {
			return nil, err
		}
	}

	if r.config.warehouse == nil {
		return nil, errors.NewConfigError("refinery", "no warehouse configured", nil)
	}

	return r, nil
}

// Run implements Refinery.
func (r *refinery) Run(ctx context.Context) ([]pipeline.Result, error) {
	// One clock reading per run: every record of the run carries the same
	// audit timestamp, and re-runs differ only by it.
	now := r.config.clock().UTC()
	src := r.config.sources

	var g errgroup.Group
	g.SetLimit(r.config.concurrency)

	results := make([]pipeline.Result, 0, 6)
	collect := make(chan pipeline.Result, 6)

	run(&g, ctx, collect, tables.EntityCustomers, src.Customers, r.config.warehouse, now,
		tables.CustomerHeader, pipeline.Customers)
	run(&g, ctx, collect, tables.EntityProducts, src.Products, r.config.warehouse, now,
		tables.ProductHeader, pipeline.Products)
	run(&g, ctx, collect, tables.EntitySales, src.Sales, r.config.warehouse, now,
		tables.SaleHeader, pipeline.Sales)
	run(&g, ctx, collect, tables.EntityDemographics, src.Demographics, r.config.warehouse, now,
		tables.DemographicHeader, pipeline.Demographics)
	run(&g, ctx, collect, tables.EntityLocations, src.Locations, r.config.warehouse, now,
		tables.LocationHeader, pipeline.Locations)
	run(&g, ctx, collect, tables.EntityCategories, src.Categories, r.config.warehouse, now,
		tables.CategoryHeader, pipeline.Categories)

	// Pipeline goroutines only report through the channel, so the group
	// itself never fails.
	_ = g.Wait()
	close(collect)

	var errs []error
	for result := range collect {
		results = append(results, result)
		if result.Err != nil {
			errs = append(errs, result.Err)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Entity < results[j].Entity
	})
	return results, errors.Join(errs...)
}

// rower is satisfied by every silver record type.
type rower interface {
	Row() []string
}

// run schedules one entity pipeline on the group. A nil source skips the
// entity entirely.
func run[R any, S rower](
	g *errgroup.Group,
	ctx context.Context,
	collect chan<- pipeline.Result,
	entity tables.Entity,
	src sources.Source[R],
	wh warehouse.Warehouse,
	now time.Time,
	header []string,
	transform func([]R, time.Time) []S,
) {
	if src == nil {
		return
	}

	g.Go(func() error {
		collect <- runEntity(ctx, entity, src, wh, now, header, transform)
		return nil
	})
}

// runEntity executes one entity pipeline end to end: fetch the raw snapshot,
// transform it, and replace the entity's silver table.
func runEntity[R any, S rower](
	ctx context.Context,
	entity tables.Entity,
	src sources.Source[R],
	wh warehouse.Warehouse,
	now time.Time,
	header []string,
	transform func([]R, time.Time) []S,
) pipeline.Result {
	result := pipeline.Result{
		Entity:    entity,
		RunID:     uuid.New(),
		StartedAt: now,
	}
	started := time.Now()
	logger := logging.Ctx(ctx).With().
		Str("entity", entity.String()).
		Str("run_id", result.RunID.String()).
		Logger()

	raw, err := src.Fetch(ctx)
	if err != nil {
		result.Err = errors.WrapPipeline(entity.String(), "extract", err)
		result.Duration = time.Since(started)
		logger.Error().Err(err).Msg("Raw batch unreadable, existing output left untouched")
		return result
	}
	result.RowsIn = len(raw)

	records := transform(raw, now)
	result.RowsOut = len(records)

	batch := warehouse.Batch{
		Table:  entity.Table(),
		Header: header,
		Rows:   make([][]string, len(records)),
	}
	for i, record := range records {
		batch.Rows[i] = record.Row()
	}

	if err := wh.Replace(ctx, batch); err != nil {
		result.Err = errors.WrapPipeline(entity.String(), "load", err)
		result.Duration = time.Since(started)
		logger.Error().Err(err).Msg("Replace failed, existing output left untouched")
		return result
	}

	result.Duration = time.Since(started)
	logger.Info().
		Int("rows_in", result.RowsIn).
		Int("rows_out", result.RowsOut).
		Int("dropped", result.Dropped()).
		Dur("duration", result.Duration).
		Msg("Pipeline finished")
	return result
}
