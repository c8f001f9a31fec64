package db

import (
	"context"

	"github.com/retailstream/posgold/pkg/db/models/gold"
	"github.com/retailstream/posgold/pkg/db/models/pos"
)

// PosStore exposes the source relation reads and ingestion writes used by
// activities and tests.
type PosStore interface {
	DatabaseName() string
	Ping(ctx context.Context) error
	GetChanges(ctx context.Context) ([]pos.InventoryChange, error)
	GetStores(ctx context.Context) ([]pos.Store, error)
	GetChangeTypes(ctx context.Context) ([]pos.ChangeType, error)
	GetSnapshots(ctx context.Context) ([]pos.Snapshot, error)
	GetSuppliers(ctx context.Context) ([]pos.Supplier, error)
	InsertChanges(ctx context.Context, changes []pos.InventoryChange) error
	UpsertStores(ctx context.Context, stores []pos.Store) error
	UpsertChangeTypes(ctx context.Context, types []pos.ChangeType) error
	UpsertSnapshots(ctx context.Context, snapshots []pos.Snapshot) error
	UpsertSuppliers(ctx context.Context, suppliers []pos.Supplier) error
	Close() error
}

// GoldStore exposes the gold table writes and reads referenced by the refresh
// activity and the query app.
type GoldStore interface {
	DatabaseName() string
	Ping(ctx context.Context) error
	ReplaceInventoryCurrent(ctx context.Context, rows []gold.InventoryCurrent, version uint64) error
	ReplaceBestSuppliers(ctx context.Context, rows []gold.BestSupplier, version uint64) error
	PruneInventoryCurrent(ctx context.Context, version uint64) error
	PruneBestSuppliers(ctx context.Context, version uint64) error
	QueryInventoryCurrent(ctx context.Context, storeID uint32, cursor uint64, limit int, sortDesc bool) ([]gold.InventoryCurrent, error)
	QueryLowStock(ctx context.Context, limit int) ([]gold.InventoryCurrent, error)
	QueryBestSuppliers(ctx context.Context, limit int) ([]gold.BestSupplier, error)
	Close() error
}
