package activity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/alitto/pond/v2"
	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/retailstream/posgold/pkg/db/models/pos"
	"github.com/retailstream/posgold/pkg/etl"
	"github.com/retailstream/posgold/pkg/redis"
	goldwf "github.com/retailstream/posgold/pkg/workflows/gold"
)

// RefreshGold recomputes both gold tables from the current silver relations.
// Each run is a stateless re-evaluation: load the five input relations, run
// the three transformation stages, and write the results under one refresh
// version. The scheduler decides cadence; this activity only does one run.
func (c *Context) RefreshGold(ctx context.Context) (goldwf.RefreshResult, error) {
	started := time.Now()
	version := uint64(started.UnixNano())

	relations, err := c.loadRelations(ctx)
	if err != nil {
		return goldwf.RefreshResult{}, temporal.NewApplicationErrorWithCause("unable to load source relations", "load_relations_error", err)
	}

	filtered := etl.FilterChanges(relations.changes, relations.stores, relations.changeTypes)
	current := etl.AggregateInventory(relations.snapshots, filtered)
	recommendations := etl.SelectBestSuppliers(current, relations.suppliers)

	if err := c.GoldDB.ReplaceInventoryCurrent(ctx, current, version); err != nil {
		return goldwf.RefreshResult{}, temporal.NewApplicationError("insert_inventory_current_failed", err.Error(), nil)
	}

	if err := c.GoldDB.ReplaceBestSuppliers(ctx, recommendations, version); err != nil {
		return goldwf.RefreshResult{}, temporal.NewApplicationError("insert_best_supplier_failed", err.Error(), nil)
	}

	// Rows that left the result set must drop off the gold tables; row
	// replacement alone never removes them. Pairs retire from
	// inventory_current when their snapshot disappears, and items leave
	// best_supplier when they climb out of low stock.
	if err := c.GoldDB.PruneInventoryCurrent(ctx, version); err != nil {
		return goldwf.RefreshResult{}, temporal.NewApplicationError("prune_inventory_current_failed", err.Error(), nil)
	}

	if err := c.GoldDB.PruneBestSuppliers(ctx, version); err != nil {
		return goldwf.RefreshResult{}, temporal.NewApplicationError("prune_best_supplier_failed", err.Error(), nil)
	}

	result := goldwf.RefreshResult{
		Version:          version,
		InventoryRows:    len(current),
		SupplierRows:     len(recommendations),
		ChangesRead:      len(relations.changes),
		ChangesFiltered:  len(filtered),
		SnapshotsRead:    len(relations.snapshots),
		StartedAt:        started,
		DurationMillisec: time.Since(started).Milliseconds(),
	}

	c.Logger.Info("Gold tables refreshed",
		zap.Uint64("version", result.Version),
		zap.Int("inventory_rows", result.InventoryRows),
		zap.Int("supplier_rows", result.SupplierRows),
		zap.Int("changes_read", result.ChangesRead),
		zap.Int("changes_filtered", result.ChangesFiltered),
		zap.Int64("duration_ms", result.DurationMillisec))

	c.publishRefresh(ctx, result)

	return result, nil
}

type sourceRelations struct {
	changes     []pos.InventoryChange
	stores      []pos.Store
	changeTypes []pos.ChangeType
	snapshots   []pos.Snapshot
	suppliers   []pos.Supplier
}

// loadRelations reads the five source relations concurrently through the
// shared loader pool.
func (c *Context) loadRelations(ctx context.Context) (*sourceRelations, error) {
	rel := &sourceRelations{}

	var changesErr, storesErr, typesErr, snapshotsErr, suppliersErr error

	pool := c.loaderWorkerPool()
	group := pool.NewGroupContext(ctx)
	groupCtx := group.Context()

	group.Submit(func() {
		if err := groupCtx.Err(); err != nil {
			return
		}
		rel.changes, changesErr = c.PosDB.GetChanges(groupCtx)
	})
	group.Submit(func() {
		if err := groupCtx.Err(); err != nil {
			return
		}
		rel.stores, storesErr = c.PosDB.GetStores(groupCtx)
	})
	group.Submit(func() {
		if err := groupCtx.Err(); err != nil {
			return
		}
		rel.changeTypes, typesErr = c.PosDB.GetChangeTypes(groupCtx)
	})
	group.Submit(func() {
		if err := groupCtx.Err(); err != nil {
			return
		}
		rel.snapshots, snapshotsErr = c.PosDB.GetSnapshots(groupCtx)
	})
	group.Submit(func() {
		if err := groupCtx.Err(); err != nil {
			return
		}
		rel.suppliers, suppliersErr = c.PosDB.GetSuppliers(groupCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		c.Logger.Warn("parallel relation load encountered error", zap.Error(err))
	}

	for _, err := range []error{changesErr, storesErr, typesErr, snapshotsErr, suppliersErr} {
		if err != nil {
			return nil, err
		}
	}

	return rel, nil
}

// publishRefresh notifies downstream listeners of a completed refresh.
// Best-effort: a missing or failing Redis must not fail the run.
func (c *Context) publishRefresh(ctx context.Context, result goldwf.RefreshResult) {
	if c.RedisClient == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		c.Logger.Warn("Failed to marshal refresh summary", zap.Error(err))
		return
	}

	c.RedisClient.Publish(ctx, redis.ChannelRefresh, payload)
}
