package gold

import "time"

const InventoryCurrentTableName = "inventory_current"

// Quality is the refinement tier tag carried as table metadata. It has no
// behavioral effect.
const Quality = "gold"

// InventoryCurrent is the current inventory position for a (store, item)
// pair: the latest physical count plus all change events recorded at or
// after it.
type InventoryCurrent struct {
	StoreID          uint32    `ch:"store_id" json:"store_id"`
	ItemID           uint32    `ch:"item_id" json:"item_id"`
	SnapshotQuantity int32     `ch:"snapshot_quantity" json:"snapshot_quantity"`
	ChangeQuantity   int32     `ch:"change_quantity" json:"change_quantity"`
	CurrentQuantity  int32     `ch:"current_quantity" json:"current_quantity"`
	DateTime         time.Time `ch:"date_time" json:"date_time"`
	InventoryType    string    `ch:"inventory_type" json:"inventory_type"`
	StockStatus      string    `ch:"stock_status" json:"stock_status"`
	// Refresh version, ReplacingMergeTree(version) needs it present.
	Version uint64 `ch:"version" json:"-"`
}
