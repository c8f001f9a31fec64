package pos

import "time"

const SnapshotTableName = "latest_inventory_snapshot"

// Snapshot is the most recent full physical count for a (store, item) pair.
// Exactly one row per pair survives in the source relation.
type Snapshot struct {
	StoreID  uint32    `ch:"store_id" json:"store_id"`
	ItemID   uint32    `ch:"item_id" json:"item_id"`
	Quantity int32     `ch:"quantity" json:"quantity"` // absolute count
	DateTime time.Time `ch:"date_time" json:"date_time"`
}
