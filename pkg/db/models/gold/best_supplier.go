package gold

import "time"

const BestSupplierTableName = "best_supplier"

// BestSupplier is a restock recommendation for an item in low stock: the
// supplier column whose score is the maximum of the three candidates.
// StoreID and ItemID are the materialization key for row replacement; the
// consumable projection is the remaining five columns.
type BestSupplier struct {
	StoreID         uint32    `ch:"store_id" json:"-"`
	ItemID          uint32    `ch:"item_id" json:"-"`
	Name            string    `ch:"name" json:"name"`
	InventoryType   string    `ch:"inventory_type" json:"inventory_type"`
	CurrentQuantity int32     `ch:"current_quantity" json:"current_quantity"`
	TopSupplier     string    `ch:"top_supplier" json:"top_supplier"`
	DateTime        time.Time `ch:"date_time" json:"date_time"`
	Version         uint64    `ch:"version" json:"-"`
}
