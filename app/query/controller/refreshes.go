package controller

import (
	"net/http"
	"sort"

	goldwf "github.com/retailstream/posgold/pkg/workflows/gold"
)

// HandleRefreshes returns the recently observed gold refresh summaries,
// newest first. Empty when Redis notifications are disabled.
func (c *Controller) HandleRefreshes(w http.ResponseWriter, r *http.Request) {
	out := make([]goldwf.RefreshResult, 0, c.App.RefreshLog.Size())
	c.App.RefreshLog.Range(func(_ uint64, result goldwf.RefreshResult) bool {
		out = append(out, result)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(out),
		"data":  out,
	})
}
