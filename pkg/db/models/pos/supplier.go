package pos

const SupplierTableName = "suppliers"

// Supplier carries the per-item supplier reference row with the three
// candidate supplier scores the recommendation picks from.
type Supplier struct {
	ItemID    uint32 `ch:"item_id" json:"item_id"`
	Name      string `ch:"name" json:"name"`
	Supplier1 int32  `ch:"supplier1" json:"supplier1"`
	Supplier2 int32  `ch:"supplier2" json:"supplier2"`
	Supplier3 int32  `ch:"supplier3" json:"supplier3"`
}
