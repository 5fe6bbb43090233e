package refinery

import (
	"time"

	"github.com/lodeworks/refinery/pkg/errors"
	"github.com/lodeworks/refinery/pkg/pipeline"
	"github.com/lodeworks/refinery/pkg/sources"
	"github.com/lodeworks/refinery/pkg/warehouse"
)

// Option is a function that configures a Refinery instance.
type Option func(*config) error

// config holds the run configuration of a Refinery instance.
type config struct {
	sources     sources.Set
	warehouse   warehouse.Warehouse
	clock       pipeline.Clock
	concurrency int
}

// defaultConcurrency matches the number of entity pipelines; they are
// embarrassingly parallel, so by default they all run at once.
const defaultConcurrency = 6

func defaultConfig() *config {
	return &config{
		clock:       time.Now,
		concurrency: defaultConcurrency,
	}
}

// WithSources configures the raw feeds. Entities without a source are
// skipped.
func WithSources(set sources.Set) Option {
	return func(c *config) error {
		c.sources = set
		return nil
	}
}

// WithWarehouse configures where cleansed batches are published. Required.
func WithWarehouse(w warehouse.Warehouse) Option {
	return func(c *config) error {
		c.warehouse = w
		return nil
	}
}

// WithClock configures the processing-time source. Useful for deterministic
// audit timestamps in tests.
func WithClock(clock pipeline.Clock) Option {
	return func(c *config) error {
		if clock == nil {
			return errors.NewConfigError("refinery", "clock must not be nil", nil)
		}
		c.clock = clock
		return nil
	}
}

// WithConcurrency caps how many entity pipelines run at once.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewConfigError("refinery", "concurrency must be at least 1", nil)
		}
		c.concurrency = n
		return nil
	}
}
