package pos

import "time"

const InventoryChangeTableName = "inventory_change"

// InventoryChange is a single quantity delta recorded by a point-of-sale or
// inventory system since the last physical count.
type InventoryChange struct {
	StoreID      uint32    `ch:"store_id" json:"store_id"`
	ItemID       uint32    `ch:"item_id" json:"item_id"`
	ChangeTypeID uint32    `ch:"change_type_id" json:"change_type_id"`
	DateTime     time.Time `ch:"date_time" json:"date_time"`
	Quantity     int32     `ch:"quantity" json:"quantity"` // delta, may be negative
}

// FilteredChange is an inventory change joined to its dimensions and projected
// to the narrow change schema consumed by the aggregator.
type FilteredChange struct {
	StoreID  uint32    `ch:"store_id" json:"store_id"`
	ItemID   uint32    `ch:"item_id" json:"item_id"`
	DateTime time.Time `ch:"date_time" json:"date_time"`
	Quantity int32     `ch:"quantity" json:"quantity"`
}
