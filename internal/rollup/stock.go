//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package rollup

import (
	"fmt"
	"sort"

	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/metrics"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

// StockRow is the sell-ship rollup of inventory facts.
type StockRow struct {
	Key   []string `json:"key"`
	Label string   `json:"label"`
	SKUs  int      `json:"skus"`

	Inbound    float64 `json:"inbound_qty"`
	TransferIn float64 `json:"transfer_in"`
	Sold       float64 `json:"sales_qty"`
	EOP        float64 `json:"eop_qty"`

	// SellShip is sold over inbound plus transfers.
	SellShip float64 `json:"sell_ship_ratio"`

	// EOPShare is the group's share of total end-of-period stock.
	EOPShare float64 `json:"eop_share"`
}

// SellShip groups inventory rows by SKU-level dimensions. Rows are ordered
// by descending units sold, ties in order of first appearance.
func SellShip(rows []join.InventoryRow, keys []Dimension) ([]StockRow, error) {
	for _, k := range keys {
		if !k.SKULevel() {
			return nil, fmt.Errorf("dimension %s does not apply to inventory", k)
		}
	}

	index := make(map[string]int)
	var out []StockRow
	skus := make([]map[string]bool, 0)
	var totalEOP float64

	for i := range rows {
		inv := &rows[i]
		probe := join.Row{
			SalesFact: snapshot.SalesFact{
				SKUID:      inv.SKUID,
				SeasonYear: inv.SeasonYear,
				Season:     inv.Season,
			},
			SKU:      inv.SKU,
			Category: inv.Category,
			Band:     inv.Band,
		}
		key := keyOf(keys, &probe)
		mk := mapKey(key)
		j, ok := index[mk]
		if !ok {
			j = len(out)
			index[mk] = j
			out = append(out, StockRow{Key: key, Label: labelOf(key)})
			skus = append(skus, make(map[string]bool))
		}
		s := &out[j]
		s.Inbound += inv.InboundQty
		s.TransferIn += inv.TransferIn
		s.Sold += inv.SalesQty
		s.EOP += inv.EOPQty
		skus[j][inv.SKUID] = true
		totalEOP += inv.EOPQty
	}

	for i := range out {
		out[i].SKUs = len(skus[i])
		out[i].SellShip = metrics.SellShipRatio(out[i].Sold, out[i].Inbound, out[i].TransferIn)
		out[i].EOPShare = metrics.SafeDiv(out[i].EOP, totalEOP)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sold > out[j].Sold })
	return out, nil
}
