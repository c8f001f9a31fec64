package controller

import (
	"net/http"
	"strconv"

	"github.com/retailstream/posgold/pkg/db/models/gold"
)

// packPairCursor packs a (store_id, item_id) pair into an opaque page cursor.
func packPairCursor(storeID, itemID uint32) uint64 {
	return uint64(storeID)<<32 | uint64(itemID)
}

// HandleInventory returns paginated current inventory rows in (store_id,
// item_id) key order. Supports cursor-based pagination using the limit+1
// pattern.
// Query parameters:
//   - store_id (optional): restrict to one store
//   - cursor: packed (store_id, item_id) pair to start after (exclusive)
//   - limit: max number of results (default/max defined in parsePageWindow)
//   - sort: "asc" or "desc" (default "asc")
func (c *Controller) HandleInventory(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var storeID uint32
	if v := r.URL.Query().Get("store_id"); v != "" {
		n, parseErr := strconv.ParseUint(v, 10, 32)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "invalid store_id")
			return
		}
		storeID = uint32(n)
	}

	ctx := r.Context()

	sortDesc := page.Order == keyOrderDesc

	// Query one row past the window to detect if there are more pages
	rows, err := c.App.GoldDB.QueryInventoryCurrent(ctx, storeID, page.Cursor, page.Rows+1, sortDesc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	nextCursor := (*uint64)(nil)
	if len(rows) > page.Rows {
		rows = rows[:page.Rows]
		last := rows[len(rows)-1]
		cursor := packPairCursor(last.StoreID, last.ItemID)
		nextCursor = &cursor
	}

	writeJSON(w, http.StatusOK, pagedResponse[gold.InventoryCurrent]{
		Data:       rows,
		Limit:      page.Rows,
		NextCursor: nextCursor,
	})
}

// HandleLowStock returns the inventory rows currently flagged with low stock
// status, in the canonical (current_quantity, inventory_type) order.
func (c *Controller) HandleLowStock(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := c.App.GoldDB.QueryLowStock(r.Context(), page.Rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse[gold.InventoryCurrent]{
		Data:  rows,
		Limit: page.Rows,
	})
}
