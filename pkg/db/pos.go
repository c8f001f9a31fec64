package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/retailstream/posgold/pkg/db/clickhouse"
	"github.com/retailstream/posgold/pkg/db/models/pos"
)

// PosDB wraps the database holding the silver point-of-sale relations: raw
// inventory change events, the reference dimensions, the latest per-pair
// snapshot, and the supplier reference. Upstream ingestion owns the data;
// this layer ensures the schema exists and provides typed read/write paths.
type PosDB struct {
	clickhouse.Client
	Name string
}

// DatabaseName returns the source database name.
func (db *PosDB) DatabaseName() string {
	return db.Name
}

// Close terminates the underlying ClickHouse connection.
func (db *PosDB) Close() error {
	return db.Db.Close()
}

// InitializeDB creates the source database and relations using raw SQL.
func (db *PosDB) InitializeDB(ctx context.Context) error {
	if err := db.CreateDbIfNotExists(ctx, db.Name); err != nil {
		return err
	}

	changeQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			store_id UInt32,
			item_id UInt32,
			change_type_id UInt32,
			date_time DateTime,
			quantity Int32
		) ENGINE = %s
		ORDER BY (store_id, item_id, date_time)
	`, db.Name, pos.InventoryChangeTableName, clickhouse.MergeTree)
	if err := db.Exec(ctx, changeQuery); err != nil {
		return fmt.Errorf("create %s: %w", pos.InventoryChangeTableName, err)
	}

	storeQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			store_id UInt32,
			name String
		) ENGINE = %s
		ORDER BY (store_id)
	`, db.Name, pos.StoreTableName, clickhouse.ReplacingMergeTree)
	if err := db.Exec(ctx, storeQuery); err != nil {
		return fmt.Errorf("create %s: %w", pos.StoreTableName, err)
	}

	typeQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			change_type_id UInt32,
			change_type String
		) ENGINE = %s
		ORDER BY (change_type_id)
	`, db.Name, pos.ChangeTypeTableName, clickhouse.ReplacingMergeTree)
	if err := db.Exec(ctx, typeQuery); err != nil {
		return fmt.Errorf("create %s: %w", pos.ChangeTypeTableName, err)
	}

	snapshotQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			store_id UInt32,
			item_id UInt32,
			quantity Int32,
			date_time DateTime
		) ENGINE = ReplacingMergeTree(date_time)
		ORDER BY (store_id, item_id)
	`, db.Name, pos.SnapshotTableName)
	if err := db.Exec(ctx, snapshotQuery); err != nil {
		return fmt.Errorf("create %s: %w", pos.SnapshotTableName, err)
	}

	supplierQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			item_id UInt32,
			name String,
			supplier1 Int32,
			supplier2 Int32,
			supplier3 Int32
		) ENGINE = %s
		ORDER BY (item_id)
	`, db.Name, pos.SupplierTableName, clickhouse.ReplacingMergeTree)
	if err := db.Exec(ctx, supplierQuery); err != nil {
		return fmt.Errorf("create %s: %w", pos.SupplierTableName, err)
	}

	return nil
}

// GetChanges returns all raw inventory change events.
func (db *PosDB) GetChanges(ctx context.Context) ([]pos.InventoryChange, error) {
	query := fmt.Sprintf(`
		SELECT store_id, item_id, change_type_id, date_time, quantity
		FROM "%s"."%s"
		ORDER BY (store_id, item_id, date_time)
	`, db.Name, pos.InventoryChangeTableName)

	var rows []pos.InventoryChange
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get inventory changes: %w", err)
	}
	return rows, nil
}

// GetStores returns the deduped store dimension.
func (db *PosDB) GetStores(ctx context.Context) ([]pos.Store, error) {
	query := fmt.Sprintf(`
		SELECT store_id, name
		FROM "%s"."%s" FINAL
		ORDER BY store_id
	`, db.Name, pos.StoreTableName)

	var rows []pos.Store
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get stores: %w", err)
	}
	return rows, nil
}

// GetChangeTypes returns the deduped change type dimension.
func (db *PosDB) GetChangeTypes(ctx context.Context) ([]pos.ChangeType, error) {
	query := fmt.Sprintf(`
		SELECT change_type_id, change_type
		FROM "%s"."%s" FINAL
		ORDER BY change_type_id
	`, db.Name, pos.ChangeTypeTableName)

	var rows []pos.ChangeType
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get change types: %w", err)
	}
	return rows, nil
}

// GetSnapshots returns the latest (deduped) snapshot per (store, item) pair.
func (db *PosDB) GetSnapshots(ctx context.Context) ([]pos.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT store_id, item_id, quantity, date_time
		FROM "%s"."%s" FINAL
		ORDER BY (store_id, item_id)
	`, db.Name, pos.SnapshotTableName)

	var rows []pos.Snapshot
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get snapshots: %w", err)
	}
	return rows, nil
}

// GetSuppliers returns the deduped supplier reference.
func (db *PosDB) GetSuppliers(ctx context.Context) ([]pos.Supplier, error) {
	query := fmt.Sprintf(`
		SELECT item_id, name, supplier1, supplier2, supplier3
		FROM "%s"."%s" FINAL
		ORDER BY item_id
	`, db.Name, pos.SupplierTableName)

	var rows []pos.Supplier
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get suppliers: %w", err)
	}
	return rows, nil
}

// InsertChanges persists a batch of raw inventory change events.
func (db *PosDB) InsertChanges(ctx context.Context, changes []pos.InventoryChange) error {
	if len(changes) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (
		store_id, item_id, change_type_id, date_time, quantity
	) VALUES`, db.Name, pos.InventoryChangeTableName)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, c := range changes {
		if err = batch.Append(c.StoreID, c.ItemID, c.ChangeTypeID, c.DateTime, c.Quantity); err != nil {
			return fmt.Errorf("append inventory change: %w", err)
		}
	}

	return batch.Send()
}

// UpsertStores persists store dimension rows; replacement happens at merge time.
func (db *PosDB) UpsertStores(ctx context.Context, stores []pos.Store) error {
	if len(stores) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (store_id, name) VALUES`, db.Name, pos.StoreTableName)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, s := range stores {
		if err = batch.Append(s.StoreID, s.Name); err != nil {
			return fmt.Errorf("append store: %w", err)
		}
	}

	return batch.Send()
}

// UpsertChangeTypes persists change type dimension rows.
func (db *PosDB) UpsertChangeTypes(ctx context.Context, types []pos.ChangeType) error {
	if len(types) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (change_type_id, change_type) VALUES`, db.Name, pos.ChangeTypeTableName)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, t := range types {
		if err = batch.Append(t.ChangeTypeID, t.ChangeType); err != nil {
			return fmt.Errorf("append change type: %w", err)
		}
	}

	return batch.Send()
}

// UpsertSnapshots persists snapshot rows; the newest date_time wins per pair.
func (db *PosDB) UpsertSnapshots(ctx context.Context, snapshots []pos.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (
		store_id, item_id, quantity, date_time
	) VALUES`, db.Name, pos.SnapshotTableName)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, s := range snapshots {
		if err = batch.Append(s.StoreID, s.ItemID, s.Quantity, s.DateTime); err != nil {
			return fmt.Errorf("append snapshot: %w", err)
		}
	}

	return batch.Send()
}

// UpsertSuppliers persists supplier reference rows.
func (db *PosDB) UpsertSuppliers(ctx context.Context, suppliers []pos.Supplier) error {
	if len(suppliers) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (
		item_id, name, supplier1, supplier2, supplier3
	) VALUES`, db.Name, pos.SupplierTableName)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, s := range suppliers {
		if err = batch.Append(s.ItemID, s.Name, s.Supplier1, s.Supplier2, s.Supplier3); err != nil {
			return fmt.Errorf("append supplier: %w", err)
		}
	}

	return batch.Send()
}
