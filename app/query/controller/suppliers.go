package controller

import (
	"net/http"

	"github.com/retailstream/posgold/pkg/db/models/gold"
)

// HandleBestSuppliers returns the supplier recommendations for items
// currently in low stock.
func (c *Controller) HandleBestSuppliers(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := c.App.GoldDB.QueryBestSuppliers(r.Context(), page.Rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse[gold.BestSupplier]{
		Data:  rows,
		Limit: page.Rows,
	})
}
