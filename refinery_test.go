package refinery_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	refinery "github.com/lodeworks/refinery"
	"github.com/lodeworks/refinery/pkg/errors"
	"github.com/lodeworks/refinery/pkg/sources"
	"github.com/lodeworks/refinery/pkg/tables"
	"github.com/lodeworks/refinery/pkg/warehouse"
)

func iptr(i int) *int { return &i }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func testSources() sources.Set {
	return sources.Set{
		Customers: sources.Static([]tables.RawCustomer{
			{ID: iptr(1), Key: "AW00000001", MaritalStatus: "S", Gender: "M", CreatedAt: datePtr(2023, 1, 1)},
			{ID: iptr(1), Key: "AW00000001", MaritalStatus: "M", Gender: "M", CreatedAt: datePtr(2023, 6, 1)},
			{ID: nil, Key: "orphan"},
		}),
		Locations: sources.Static([]tables.RawLocation{
			{ID: "AW-00011000", Country: "DE"},
		}),
	}
}

func TestRunPublishesCleanBatches(t *testing.T) {
	ctx := context.Background()
	wh := warehouse.NewMemory()

	ref, err := refinery.New(
		refinery.WithSources(testSources()),
		refinery.WithWarehouse(wh),
		refinery.WithClock(fixedClock),
	)
	require.NoError(t, err)

	results, err := ref.Run(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2, "only configured entities run")

	customers, err := wh.Read(ctx, "customers")
	require.NoError(t, err)
	require.Equal(t, 1, customers.Len(), "duplicates collapsed, null keys dropped")
	assert.Equal(t, tables.CustomerHeader, customers.Header)
	assert.Equal(t, "Married", customers.Rows[0][4], "later creation date wins")

	locations, err := wh.Read(ctx, "locations")
	require.NoError(t, err)
	require.Equal(t, 1, locations.Len())
	assert.Equal(t, "AW00011000", locations.Rows[0][0])
	assert.Equal(t, "Germany", locations.Rows[0][1])
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	wh := warehouse.NewMemory()

	ref, err := refinery.New(
		refinery.WithSources(testSources()),
		refinery.WithWarehouse(wh),
		refinery.WithClock(fixedClock),
	)
	require.NoError(t, err)

	_, err = ref.Run(ctx)
	require.NoError(t, err)
	first, err := wh.Read(ctx, "customers")
	require.NoError(t, err)

	_, err = ref.Run(ctx)
	require.NoError(t, err)
	second, err := wh.Read(ctx, "customers")
	require.NoError(t, err)

	assert.Equal(t, first, second, "unchanged input yields byte-identical output")
}

func TestRunIsolatesPipelineFaults(t *testing.T) {
	ctx := context.Background()
	wh := warehouse.NewMemory()

	src := testSources()
	src.Categories = sources.Func[tables.RawCategory](func(context.Context) ([]tables.RawCategory, error) {
		return nil, errors.New("extract exploded")
	})

	ref, err := refinery.New(
		refinery.WithSources(src),
		refinery.WithWarehouse(wh),
		refinery.WithClock(fixedClock),
	)
	require.NoError(t, err)

	results, err := ref.Run(ctx)
	require.Error(t, err, "the failed pipeline is reported")
	require.Len(t, results, 3)

	var failed, succeeded int
	for _, r := range results {
		if r.Err != nil {
			failed++
			assert.Equal(t, tables.EntityCategories, r.Entity)
		} else {
			succeeded++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, succeeded, "sibling pipelines are unaffected")

	// The failed entity never published anything.
	_, err = wh.Read(ctx, "categories")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	// Siblings did.
	_, err = wh.Read(ctx, "customers")
	assert.NoError(t, err)
}

func TestNewRequiresWarehouse(t *testing.T) {
	_, err := refinery.New(refinery.WithSources(testSources()))
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRunRecordsCounts(t *testing.T) {
	ctx := context.Background()

	ref, err := refinery.New(
		refinery.WithSources(testSources()),
		refinery.WithWarehouse(warehouse.NewMemory()),
		refinery.WithClock(fixedClock),
		refinery.WithConcurrency(1),
	)
	require.NoError(t, err)

	results, err := ref.Run(ctx)
	require.NoError(t, err)

	for _, r := range results {
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", r.RunID.String())
		if r.Entity == tables.EntityCustomers {
			assert.Equal(t, 3, r.RowsIn)
			assert.Equal(t, 1, r.RowsOut)
			assert.Equal(t, 2, r.Dropped())
		}
	}
}
