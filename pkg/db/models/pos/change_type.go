package pos

const ChangeTypeTableName = "inventory_change_type"

// ChangeTypeBOPIS marks buy-online-pickup-in-store change events.
const ChangeTypeBOPIS = "bopis"

// ChangeType is a reference dimension row for an inventory change type.
type ChangeType struct {
	ChangeTypeID uint32 `ch:"change_type_id" json:"change_type_id"`
	ChangeType   string `ch:"change_type" json:"change_type"`
}
