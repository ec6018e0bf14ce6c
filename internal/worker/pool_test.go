package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regulint/trueup/internal/locate"
	"github.com/regulint/trueup/internal/model"
)

func regions(ids ...model.TableID) []locate.Region {
	out := make([]locate.Region, len(ids))
	for i, id := range ids {
		out[i] = locate.Region{ID: id, StartPage: i + 1, EndPage: i + 1}
	}
	return out
}

func TestExtractAllPreservesOrder(t *testing.T) {
	in := regions(model.TableARRSummary, model.TableFuelStations, model.TableDepSchedule)
	pool := NewPool(2)

	results := pool.ExtractAll(context.Background(), in, func(ctx context.Context, r locate.Region) (*model.RawTable, error) {
		return &model.RawTable{ID: r.ID, StartPage: r.StartPage}, nil
	})

	require.Len(t, results, 3)
	for i, r := range in {
		assert.Equal(t, r.ID, results[i].ID)
		require.NoError(t, results[i].Err)
		assert.Equal(t, r.StartPage, results[i].Table.StartPage)
	}
}

func TestExtractAllCarriesPerTableErrors(t *testing.T) {
	in := regions(model.TableARRSummary, model.TableFuelStations)
	pool := NewPool(4)

	results := pool.ExtractAll(context.Background(), in, func(ctx context.Context, r locate.Region) (*model.RawTable, error) {
		if r.ID == model.TableFuelStations {
			return nil, fmt.Errorf("region yielded no cells")
		}
		return &model.RawTable{ID: r.ID}, nil
	})

	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	assert.Nil(t, results[1].Table)
}

func TestExtractAllCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	in := regions(model.TableARRSummary, model.TableFuelStations, model.TableDepSchedule)
	results := NewPool(1).ExtractAll(ctx, in, func(ctx context.Context, r locate.Region) (*model.RawTable, error) {
		calls.Add(1)
		return &model.RawTable{ID: r.ID}, nil
	})

	assert.Zero(t, calls.Load(), "no extraction runs after cancellation")
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestNewPoolFloorsWorkers(t *testing.T) {
	p := NewPool(0)
	assert.Equal(t, 1, p.workers)
}
