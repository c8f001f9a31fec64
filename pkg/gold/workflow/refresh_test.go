package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
	"go.uber.org/zap/zaptest"

	goldmodels "github.com/retailstream/posgold/pkg/db/models/gold"
	"github.com/retailstream/posgold/pkg/db/models/pos"
	"github.com/retailstream/posgold/pkg/gold/activity"
	"github.com/retailstream/posgold/pkg/temporal"
)

func TestRefreshGoldWorkflowHappyPath(t *testing.T) {
	suite := testsuite.WorkflowTestSuite{}
	env := suite.NewTestWorkflowEnvironment()

	logger := zaptest.NewLogger(t)
	t0 := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	posStore := &wfFakePosStore{
		changes: []pos.InventoryChange{
			{StoreID: 1, ItemID: 100, ChangeTypeID: 1, DateTime: t0.Add(time.Minute), Quantity: -9},
		},
		stores:      []pos.Store{{StoreID: 1, Name: "downtown"}},
		changeTypes: []pos.ChangeType{{ChangeTypeID: 1, ChangeType: "sale"}},
		snapshots:   []pos.Snapshot{{StoreID: 1, ItemID: 100, Quantity: 10, DateTime: t0}},
		suppliers: []pos.Supplier{
			{ItemID: 100, Name: "acme wholesale", Supplier1: 5, Supplier2: 9, Supplier3: 3},
		},
	}
	goldStore := &wfFakeGoldStore{}

	activityCtx := &activity.Context{
		Logger:         logger,
		PosDB:          posStore,
		GoldDB:         goldStore,
		TemporalClient: &temporal.Client{GoldQueue: "gold"},
	}

	wfCtx := Context{
		ActivityContext: activityCtx,
	}

	env.RegisterWorkflow(wfCtx.RefreshGoldWorkflow)
	env.RegisterActivity(activityCtx.RefreshGold)

	env.ExecuteWorkflow(wfCtx.RefreshGoldWorkflow)

	require.NoError(t, env.GetWorkflowError())
	require.Equal(t, 1, goldStore.replaceInventoryCalls)
	require.Equal(t, 1, goldStore.replaceSupplierCalls)
	require.Equal(t, 1, goldStore.pruneInventoryCalls)
	require.Equal(t, 1, goldStore.pruneCalls)

	// 10 - 9 = 1 -> low stock -> one recommendation with the max score column
	require.Len(t, goldStore.inventory, 1)
	require.Equal(t, int32(1), goldStore.inventory[0].CurrentQuantity)
	require.Len(t, goldStore.suppliers, 1)
	require.Equal(t, "supplier2", goldStore.suppliers[0].TopSupplier)
}

type wfFakePosStore struct {
	changes     []pos.InventoryChange
	stores      []pos.Store
	changeTypes []pos.ChangeType
	snapshots   []pos.Snapshot
	suppliers   []pos.Supplier
}

func (f *wfFakePosStore) DatabaseName() string { return "posgold_pos_test" }

func (f *wfFakePosStore) Ping(context.Context) error { return nil }

func (f *wfFakePosStore) GetChanges(context.Context) ([]pos.InventoryChange, error) {
	return f.changes, nil
}

func (f *wfFakePosStore) GetStores(context.Context) ([]pos.Store, error) { return f.stores, nil }

func (f *wfFakePosStore) GetChangeTypes(context.Context) ([]pos.ChangeType, error) {
	return f.changeTypes, nil
}

func (f *wfFakePosStore) GetSnapshots(context.Context) ([]pos.Snapshot, error) {
	return f.snapshots, nil
}

func (f *wfFakePosStore) GetSuppliers(context.Context) ([]pos.Supplier, error) {
	return f.suppliers, nil
}

func (f *wfFakePosStore) InsertChanges(context.Context, []pos.InventoryChange) error { return nil }
func (f *wfFakePosStore) UpsertStores(context.Context, []pos.Store) error            { return nil }
func (f *wfFakePosStore) UpsertChangeTypes(context.Context, []pos.ChangeType) error  { return nil }
func (f *wfFakePosStore) UpsertSnapshots(context.Context, []pos.Snapshot) error      { return nil }
func (f *wfFakePosStore) UpsertSuppliers(context.Context, []pos.Supplier) error      { return nil }
func (f *wfFakePosStore) Close() error                                               { return nil }

type wfFakeGoldStore struct {
	inventory             []goldmodels.InventoryCurrent
	suppliers             []goldmodels.BestSupplier
	replaceInventoryCalls int
	replaceSupplierCalls  int
	pruneInventoryCalls   int
	pruneCalls            int
}

func (f *wfFakeGoldStore) DatabaseName() string { return "posgold_gold_test" }

func (f *wfFakeGoldStore) Ping(context.Context) error { return nil }

func (f *wfFakeGoldStore) ReplaceInventoryCurrent(_ context.Context, rows []goldmodels.InventoryCurrent, _ uint64) error {
	f.inventory = rows
	f.replaceInventoryCalls++
	return nil
}

func (f *wfFakeGoldStore) ReplaceBestSuppliers(_ context.Context, rows []goldmodels.BestSupplier, _ uint64) error {
	f.suppliers = rows
	f.replaceSupplierCalls++
	return nil
}

func (f *wfFakeGoldStore) PruneInventoryCurrent(context.Context, uint64) error {
	f.pruneInventoryCalls++
	return nil
}

func (f *wfFakeGoldStore) PruneBestSuppliers(context.Context, uint64) error {
	f.pruneCalls++
	return nil
}

func (f *wfFakeGoldStore) QueryInventoryCurrent(context.Context, uint32, uint64, int, bool) ([]goldmodels.InventoryCurrent, error) {
	return f.inventory, nil
}

func (f *wfFakeGoldStore) QueryLowStock(context.Context, int) ([]goldmodels.InventoryCurrent, error) {
	return nil, nil
}

func (f *wfFakeGoldStore) QueryBestSuppliers(context.Context, int) ([]goldmodels.BestSupplier, error) {
	return f.suppliers, nil
}

func (f *wfFakeGoldStore) Close() error { return nil }
