package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/retailstream/posgold/pkg/db/clickhouse"
	"github.com/retailstream/posgold/pkg/db/models/gold"
)

// GoldDB wraps the database holding the derived gold tables consumed by
// downstream and BI collaborators.
type GoldDB struct {
	clickhouse.Client
	Name string
}

// DatabaseName returns the gold database name.
func (db *GoldDB) DatabaseName() string {
	return db.Name
}

// Close terminates the underlying ClickHouse connection.
func (db *GoldDB) Close() error {
	return db.Db.Close()
}

// InitializeDB creates the gold tables using raw SQL. The quality tier tag is
// recorded as table metadata only.
func (db *GoldDB) InitializeDB(ctx context.Context) error {
	if err := db.CreateDbIfNotExists(ctx, db.Name); err != nil {
		return err
	}

	currentQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			store_id UInt32,
			item_id UInt32,
			snapshot_quantity Int32,
			change_quantity Int32,
			current_quantity Int32,
			date_time DateTime,
			inventory_type String,
			stock_status String,
			version UInt64
		) ENGINE = ReplacingMergeTree(version)
		ORDER BY (store_id, item_id)
		COMMENT 'current inventory count for a product in a store location (quality: %s)'
	`, db.Name, gold.InventoryCurrentTableName, gold.Quality)
	if err := db.Exec(ctx, currentQuery); err != nil {
		return fmt.Errorf("create %s: %w", gold.InventoryCurrentTableName, err)
	}

	supplierQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			store_id UInt32,
			item_id UInt32,
			name String,
			inventory_type String,
			current_quantity Int32,
			top_supplier String,
			date_time DateTime,
			version UInt64
		) ENGINE = ReplacingMergeTree(version)
		ORDER BY (store_id, item_id)
		COMMENT 'best suppliers for low stock items (quality: %s)'
	`, db.Name, gold.BestSupplierTableName, gold.Quality)
	if err := db.Exec(ctx, supplierQuery); err != nil {
		return fmt.Errorf("create %s: %w", gold.BestSupplierTableName, err)
	}

	return nil
}

// ReplaceInventoryCurrent writes a full refresh of inventory_current under
// the given version. Older versions collapse at merge time; reads use FINAL.
func (db *GoldDB) ReplaceInventoryCurrent(ctx context.Context, rows []gold.InventoryCurrent, version uint64) error {
	if len(rows) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (
		store_id, item_id, snapshot_quantity, change_quantity, current_quantity,
		date_time, inventory_type, stock_status, version
	) VALUES`, db.Name, gold.InventoryCurrentTableName)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, r := range rows {
		if err = batch.Append(
			r.StoreID,
			r.ItemID,
			r.SnapshotQuantity,
			r.ChangeQuantity,
			r.CurrentQuantity,
			r.DateTime,
			r.InventoryType,
			r.StockStatus,
			version,
		); err != nil {
			return fmt.Errorf("append inventory_current row: %w", err)
		}
	}

	return batch.Send()
}

// ReplaceBestSuppliers writes a full refresh of best_supplier under the given
// version. Call PruneBestSuppliers afterwards: recommendation membership can
// shrink between runs, and replacement alone never removes departed rows.
func (db *GoldDB) ReplaceBestSuppliers(ctx context.Context, rows []gold.BestSupplier, version uint64) error {
	if len(rows) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (
		store_id, item_id, name, inventory_type, current_quantity,
		top_supplier, date_time, version
	) VALUES`, db.Name, gold.BestSupplierTableName)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, r := range rows {
		if err = batch.Append(
			r.StoreID,
			r.ItemID,
			r.Name,
			r.InventoryType,
			r.CurrentQuantity,
			r.TopSupplier,
			r.DateTime,
			version,
		); err != nil {
			return fmt.Errorf("append best_supplier row: %w", err)
		}
	}

	return batch.Send()
}

// PruneInventoryCurrent removes inventory rows left over from runs before the
// given version. A (store, item) pair retired from the snapshot relation
// would otherwise keep its last row forever.
func (db *GoldDB) PruneInventoryCurrent(ctx context.Context, version uint64) error {
	query := fmt.Sprintf(`DELETE FROM "%s"."%s" WHERE version < ?`, db.Name, gold.InventoryCurrentTableName)
	if err := db.Exec(ctx, query, version); err != nil {
		return fmt.Errorf("prune inventory_current: %w", err)
	}
	return nil
}

// PruneBestSuppliers removes recommendation rows left over from runs before
// the given version.
func (db *GoldDB) PruneBestSuppliers(ctx context.Context, version uint64) error {
	query := fmt.Sprintf(`DELETE FROM "%s"."%s" WHERE version < ?`, db.Name, gold.BestSupplierTableName)
	if err := db.Exec(ctx, query, version); err != nil {
		return fmt.Errorf("prune best_supplier: %w", err)
	}
	return nil
}

// QueryInventoryCurrent returns current inventory rows ordered by the
// materialization key, cursor-paged. storeID of zero means all stores.
func (db *GoldDB) QueryInventoryCurrent(ctx context.Context, storeID uint32, cursor uint64, limit int, sortDesc bool) ([]gold.InventoryCurrent, error) {
	sortOrder := "ASC"
	comparison := ">"
	if sortDesc {
		sortOrder = "DESC"
		comparison = "<"
	}

	conds := make([]string, 0)
	args := make([]interface{}, 0)
	if cursor > 0 {
		// The cursor packs the (store_id, item_id) pair of the last row seen.
		conds = append(conds, fmt.Sprintf("(store_id, item_id) %s (?, ?)", comparison))
		args = append(args, uint32(cursor>>32), uint32(cursor))
	}
	if storeID != 0 {
		conds = append(conds, "store_id = ?")
		args = append(args, storeID)
	}

	query := fmt.Sprintf(`
		SELECT store_id, item_id, snapshot_quantity, change_quantity, current_quantity,
		       date_time, inventory_type, stock_status, version
		FROM "%s"."%s" FINAL
	`, db.Name, gold.InventoryCurrentTableName)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY (store_id, item_id) %s LIMIT %d", sortOrder, limit)

	var rows []gold.InventoryCurrent
	if err := db.Select(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query inventory_current: %w", err)
	}
	return rows, nil
}

// QueryLowStock returns current inventory rows in low stock status, lowest
// quantities first.
func (db *GoldDB) QueryLowStock(ctx context.Context, limit int) ([]gold.InventoryCurrent, error) {
	query := fmt.Sprintf(`
		SELECT store_id, item_id, snapshot_quantity, change_quantity, current_quantity,
		       date_time, inventory_type, stock_status, version
		FROM "%s"."%s" FINAL
		WHERE stock_status = 'low'
		ORDER BY current_quantity ASC, inventory_type ASC
		LIMIT %d
	`, db.Name, gold.InventoryCurrentTableName, limit)

	var rows []gold.InventoryCurrent
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query low stock: %w", err)
	}
	return rows, nil
}

// QueryBestSuppliers returns the current recommendation rows.
func (db *GoldDB) QueryBestSuppliers(ctx context.Context, limit int) ([]gold.BestSupplier, error) {
	query := fmt.Sprintf(`
		SELECT store_id, item_id, name, inventory_type, current_quantity,
		       top_supplier, date_time, version
		FROM "%s"."%s" FINAL
		ORDER BY current_quantity ASC
		LIMIT %d
	`, db.Name, gold.BestSupplierTableName, limit)

	var rows []gold.BestSupplier
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query best_supplier: %w", err)
	}
	return rows, nil
}
