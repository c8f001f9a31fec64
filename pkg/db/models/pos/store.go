package pos

const StoreTableName = "store"

// OnlineStoreName is the reserved store name for the online channel. BOPIS
// changes attributed to it are excluded to avoid double-counting.
const OnlineStoreName = "online"

// Store is a reference dimension row for a store location.
type Store struct {
	StoreID uint32 `ch:"store_id" json:"store_id"`
	Name    string `ch:"name" json:"name"`
}
