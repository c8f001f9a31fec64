package etl

// Inventory size classification labels.
const (
	LowQuantityItem    = "low quantity item"
	MediumQuantityItem = "medium quantity item"
	HighQuantityItem   = "high quantity item"
)

// Stock status labels.
const (
	StatusLow    = "low"
	StatusMedium = "medium"
	StatusHigh   = "high"
)

// Classification thresholds on current quantity.
const (
	lowItemMax    = 10
	mediumItemMax = 50
)

// ClassifyInventory buckets a current quantity into an inventory size class.
// The source system drew this label at random per row; here it is a fixed
// threshold function so repeated runs over the same input agree.
func ClassifyInventory(currentQuantity int32) string {
	switch {
	case currentQuantity < lowItemMax:
		return LowQuantityItem
	case currentQuantity < mediumItemMax:
		return MediumQuantityItem
	default:
		return HighQuantityItem
	}
}

// StockStatus derives the stock status label from the inventory class and the
// current quantity. The low tier returns the literal "medium quantity item"
// where its siblings return "medium"; that mismatch exists in the upstream
// system and is preserved here rather than silently corrected.
func StockStatus(inventoryType string, currentQuantity int32) string {
	switch inventoryType {
	case LowQuantityItem:
		switch {
		case currentQuantity < 3:
			return StatusLow
		case currentQuantity <= 5:
			return MediumQuantityItem
		default:
			return StatusHigh
		}
	case MediumQuantityItem:
		switch {
		case currentQuantity < 10:
			return StatusLow
		case currentQuantity < 20:
			return StatusMedium
		default:
			return StatusHigh
		}
	default:
		switch {
		case currentQuantity < 50:
			return StatusLow
		case currentQuantity < 70:
			return StatusMedium
		default:
			return StatusHigh
		}
	}
}
