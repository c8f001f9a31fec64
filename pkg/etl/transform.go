// Package etl holds the Silver-to-Gold transformation stages as pure
// functions over immutable row sets. The stages know nothing about storage
// or scheduling; callers load the input relations, run the stages, and
// persist the outputs.
package etl

import (
	"sort"

	"github.com/retailstream/posgold/pkg/db/models/gold"
	"github.com/retailstream/posgold/pkg/db/models/pos"
)

type pairKey struct {
	storeID uint32
	itemID  uint32
}

// FilterChanges joins raw change events to the store and change-type
// dimensions and drops BOPIS events attributed to the online store. Events
// with no matching dimension row are dropped (inner join semantics).
func FilterChanges(changes []pos.InventoryChange, stores []pos.Store, changeTypes []pos.ChangeType) []pos.FilteredChange {
	storeNames := make(map[uint32]string, len(stores))
	for _, s := range stores {
		storeNames[s.StoreID] = s.Name
	}
	typeNames := make(map[uint32]string, len(changeTypes))
	for _, t := range changeTypes {
		typeNames[t.ChangeTypeID] = t.ChangeType
	}

	out := make([]pos.FilteredChange, 0, len(changes))
	for _, c := range changes {
		storeName, ok := storeNames[c.StoreID]
		if !ok {
			continue
		}
		typeName, ok := typeNames[c.ChangeTypeID]
		if !ok {
			continue
		}
		// Online BOPIS pickups already decremented inventory at sale time;
		// counting them again would double-subtract.
		if storeName == pos.OnlineStoreName && typeName == pos.ChangeTypeBOPIS {
			continue
		}
		out = append(out, pos.FilteredChange{
			StoreID:  c.StoreID,
			ItemID:   c.ItemID,
			DateTime: c.DateTime,
			Quantity: c.Quantity,
		})
	}
	return out
}

// AggregateInventory left-outer-joins the latest snapshot per (store, item)
// to the filtered change stream and reduces each group to one current
// inventory row. Only changes at or after the snapshot timestamp count;
// snapshot rows with no matching change survive with a zero change quantity.
// The result carries no refresh version; the caller stamps one before
// persisting.
func AggregateInventory(snapshots []pos.Snapshot, changes []pos.FilteredChange) []gold.InventoryCurrent {
	grouped := make(map[pairKey][]pos.FilteredChange)
	for _, c := range changes {
		k := pairKey{storeID: c.StoreID, itemID: c.ItemID}
		grouped[k] = append(grouped[k], c)
	}

	out := make([]gold.InventoryCurrent, 0, len(snapshots))
	for _, snap := range snapshots {
		row := gold.InventoryCurrent{
			StoreID:          snap.StoreID,
			ItemID:           snap.ItemID,
			SnapshotQuantity: snap.Quantity,
			DateTime:         snap.DateTime,
		}

		for _, c := range grouped[pairKey{storeID: snap.StoreID, itemID: snap.ItemID}] {
			if c.DateTime.Before(snap.DateTime) {
				continue
			}
			row.ChangeQuantity += c.Quantity
			if c.DateTime.After(row.DateTime) {
				row.DateTime = c.DateTime
			}
		}

		row.CurrentQuantity = row.SnapshotQuantity + row.ChangeQuantity
		row.InventoryType = ClassifyInventory(row.CurrentQuantity)
		row.StockStatus = StockStatus(row.InventoryType, row.CurrentQuantity)
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CurrentQuantity != out[j].CurrentQuantity {
			return out[i].CurrentQuantity < out[j].CurrentQuantity
		}
		if out[i].InventoryType != out[j].InventoryType {
			return out[i].InventoryType < out[j].InventoryType
		}
		// Key tiebreak keeps the order reproducible across runs.
		if out[i].StoreID != out[j].StoreID {
			return out[i].StoreID < out[j].StoreID
		}
		return out[i].ItemID < out[j].ItemID
	})

	return out
}

// SelectBestSuppliers inner-joins current inventory to the supplier reference
// on item identity, keeps rows in low stock status, and picks the supplier
// column holding the maximum of the three scores. Ties resolve to the first
// match in order supplier1, supplier2, supplier3.
func SelectBestSuppliers(current []gold.InventoryCurrent, suppliers []pos.Supplier) []gold.BestSupplier {
	byItem := make(map[uint32]pos.Supplier, len(suppliers))
	for _, s := range suppliers {
		if _, ok := byItem[s.ItemID]; !ok {
			byItem[s.ItemID] = s
		}
	}

	out := make([]gold.BestSupplier, 0)
	for _, row := range current {
		if row.StockStatus != StatusLow {
			continue
		}
		sup, ok := byItem[row.ItemID]
		if !ok {
			continue
		}
		out = append(out, gold.BestSupplier{
			StoreID:         row.StoreID,
			ItemID:          row.ItemID,
			Name:            sup.Name,
			InventoryType:   row.InventoryType,
			CurrentQuantity: row.CurrentQuantity,
			TopSupplier:     topSupplier(sup),
			DateTime:        row.DateTime,
		})
	}
	return out
}

func topSupplier(s pos.Supplier) string {
	top := s.Supplier1
	if s.Supplier2 > top {
		top = s.Supplier2
	}
	if s.Supplier3 > top {
		top = s.Supplier3
	}
	switch top {
	case s.Supplier1:
		return "supplier1"
	case s.Supplier2:
		return "supplier2"
	default:
		return "supplier3"
	}
}
