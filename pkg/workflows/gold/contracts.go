package gold

import "time"

// Workflow names for Temporal
const (
	RefreshGoldWorkflowName = "RefreshGoldWorkflow"
)

// RefreshResult summarizes one gold refresh run. It is returned from the
// refresh activity and published as the Redis notification payload.
type RefreshResult struct {
	Version          uint64    `json:"version"`
	InventoryRows    int       `json:"inventory_rows"`
	SupplierRows     int       `json:"supplier_rows"`
	ChangesRead      int       `json:"changes_read"`
	ChangesFiltered  int       `json:"changes_filtered"`
	SnapshotsRead    int       `json:"snapshots_read"`
	StartedAt        time.Time `json:"started_at"`
	DurationMillisec int64     `json:"duration_ms"`
}
