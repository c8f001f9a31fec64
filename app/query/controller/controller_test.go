package controller

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4/json"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/retailstream/posgold/app/query/types"
	"github.com/retailstream/posgold/pkg/db/models/gold"
	"github.com/retailstream/posgold/pkg/etl"
)

// fakeGoldStore serves canned rows and records the arguments the handlers
// pass down, so the tests can assert on the paging math without ClickHouse.
type fakeGoldStore struct {
	inventoryRows []gold.InventoryCurrent
	lowStockRows  []gold.InventoryCurrent
	supplierRows  []gold.BestSupplier
	queryErr      error

	gotStoreID   uint32
	gotCursor    uint64
	gotLimit     int
	gotSortDesc  bool
	gotLowLimit  int
	gotBestLimit int
}

func (f *fakeGoldStore) DatabaseName() string       { return "gold_test" }
func (f *fakeGoldStore) Ping(context.Context) error { return nil }
func (f *fakeGoldStore) Close() error               { return nil }
func (f *fakeGoldStore) ReplaceInventoryCurrent(context.Context, []gold.InventoryCurrent, uint64) error {
	return nil
}
func (f *fakeGoldStore) ReplaceBestSuppliers(context.Context, []gold.BestSupplier, uint64) error {
	return nil
}
func (f *fakeGoldStore) PruneInventoryCurrent(context.Context, uint64) error { return nil }
func (f *fakeGoldStore) PruneBestSuppliers(context.Context, uint64) error    { return nil }

func (f *fakeGoldStore) QueryInventoryCurrent(_ context.Context, storeID uint32, cursor uint64, limit int, sortDesc bool) ([]gold.InventoryCurrent, error) {
	f.gotStoreID = storeID
	f.gotCursor = cursor
	f.gotLimit = limit
	f.gotSortDesc = sortDesc
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if limit < len(f.inventoryRows) {
		return f.inventoryRows[:limit], nil
	}
	return f.inventoryRows, nil
}

func (f *fakeGoldStore) QueryLowStock(_ context.Context, limit int) ([]gold.InventoryCurrent, error) {
	f.gotLowLimit = limit
	return f.lowStockRows, nil
}

func (f *fakeGoldStore) QueryBestSuppliers(_ context.Context, limit int) ([]gold.BestSupplier, error) {
	f.gotBestLimit = limit
	return f.supplierRows, nil
}

// inventoryRowsSeq builds n rows walking the (store_id, item_id) key.
func inventoryRowsSeq(n int) []gold.InventoryCurrent {
	rows := make([]gold.InventoryCurrent, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, gold.InventoryCurrent{
			StoreID:          1,
			ItemID:           uint32(i + 1),
			SnapshotQuantity: 20,
			CurrentQuantity:  20,
			DateTime:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			InventoryType:    etl.MediumQuantityItem,
			StockStatus:      etl.StatusHigh,
		})
	}
	return rows
}

func newTestController(t *testing.T, store *fakeGoldStore) *Controller {
	t.Helper()
	return NewController(&types.App{
		GoldDB: store,
		Logger: zaptest.NewLogger(t),
	})
}

type inventoryPage struct {
	Data       []gold.InventoryCurrent `json:"data"`
	Limit      int                     `json:"limit"`
	NextCursor *uint64                 `json:"next_cursor"`
}

func getInventory(t *testing.T, c *Controller, target string) (*httptest.ResponseRecorder, inventoryPage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c.HandleInventory(rec, req)

	var page inventoryPage
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	}
	return rec, page
}

func TestHandleInventoryDefaults(t *testing.T) {
	store := &fakeGoldStore{inventoryRows: inventoryRowsSeq(3)}
	c := newTestController(t, store)

	rec, page := getInventory(t, c, "/inventory")
	require.Equal(t, http.StatusOK, rec.Code)

	// Default window, ascending, no cursor; one extra row requested to
	// detect a following page.
	require.Equal(t, defaultPageRows+1, store.gotLimit)
	require.Equal(t, uint64(0), store.gotCursor)
	require.False(t, store.gotSortDesc)
	require.Equal(t, uint32(0), store.gotStoreID)

	require.Len(t, page.Data, 3)
	require.Equal(t, defaultPageRows, page.Limit)
	require.Nil(t, page.NextCursor)
}

func TestHandleInventoryLimitClamped(t *testing.T) {
	store := &fakeGoldStore{inventoryRows: inventoryRowsSeq(5)}
	c := newTestController(t, store)

	rec, page := getInventory(t, c, "/inventory?limit=500")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, maxPageRows+1, store.gotLimit)
	require.Equal(t, maxPageRows, page.Limit)
}

func TestHandleInventoryBadParams(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"zero limit", "/inventory?limit=0"},
		{"negative limit", "/inventory?limit=-5"},
		{"non-numeric limit", "/inventory?limit=ten"},
		{"bad cursor", "/inventory?cursor=abc"},
		{"bad sort", "/inventory?sort=banana"},
		{"bad store_id", "/inventory?store_id=first"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeGoldStore{}
			c := newTestController(t, store)

			rec, _ := getInventory(t, c, tc.target)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleInventoryNextCursor(t *testing.T) {
	// One more row than the window: the page fills and the cursor points at
	// the last row the client received.
	store := &fakeGoldStore{inventoryRows: inventoryRowsSeq(5)}
	c := newTestController(t, store)

	rec, page := getInventory(t, c, "/inventory?limit=4")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 5, store.gotLimit)
	require.Len(t, page.Data, 4)

	require.NotNil(t, page.NextCursor)
	last := page.Data[len(page.Data)-1]
	require.Equal(t, packPairCursor(last.StoreID, last.ItemID), *page.NextCursor)

	// Exactly the window: no further page.
	rec, page = getInventory(t, c, "/inventory?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, page.Data, 5)
	require.Nil(t, page.NextCursor)
}

func TestHandleInventoryCursorRoundTrip(t *testing.T) {
	store := &fakeGoldStore{inventoryRows: inventoryRowsSeq(1)}
	c := newTestController(t, store)

	cursor := packPairCursor(7, 42)
	require.Equal(t, uint64(7)<<32|42, cursor)

	rec, _ := getInventory(t, c, fmt.Sprintf("/inventory?cursor=%d&sort=desc&store_id=7", cursor))
	require.Equal(t, http.StatusOK, rec.Code)

	// The packed pair travels through the query string unchanged.
	require.Equal(t, cursor, store.gotCursor)
	require.True(t, store.gotSortDesc)
	require.Equal(t, uint32(7), store.gotStoreID)
}

func TestHandleInventoryQueryError(t *testing.T) {
	store := &fakeGoldStore{queryErr: fmt.Errorf("clickhouse down")}
	c := newTestController(t, store)

	rec, _ := getInventory(t, c, "/inventory")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleLowStock(t *testing.T) {
	store := &fakeGoldStore{lowStockRows: []gold.InventoryCurrent{
		{StoreID: 1, ItemID: 9, CurrentQuantity: 1, StockStatus: etl.StatusLow},
	}}
	c := newTestController(t, store)

	req := httptest.NewRequest(http.MethodGet, "/inventory/low?limit=10", nil)
	rec := httptest.NewRecorder()
	c.HandleLowStock(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 10, store.gotLowLimit)

	var page inventoryPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	require.Equal(t, etl.StatusLow, page.Data[0].StockStatus)
}

func TestHandleBestSuppliersBadLimit(t *testing.T) {
	store := &fakeGoldStore{}
	c := newTestController(t, store)

	req := httptest.NewRequest(http.MethodGet, "/suppliers/best?limit=0", nil)
	rec := httptest.NewRecorder()
	c.HandleBestSuppliers(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBestSuppliers(t *testing.T) {
	store := &fakeGoldStore{supplierRows: []gold.BestSupplier{
		{Name: "Widget", InventoryType: etl.LowQuantityItem, CurrentQuantity: 2, TopSupplier: "supplier1"},
	}}
	c := newTestController(t, store)

	req := httptest.NewRequest(http.MethodGet, "/suppliers/best", nil)
	rec := httptest.NewRecorder()
	c.HandleBestSuppliers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, defaultPageRows, store.gotBestLimit)

	var page struct {
		Data []gold.BestSupplier `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	require.Equal(t, "supplier1", page.Data[0].TopSupplier)
}
