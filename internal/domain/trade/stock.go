package trade

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// StockLevels nets purchased against sold quantity per product. Products
// are matched case-insensitively; the first spelling seen is reported.
// Rows come back sorted by product name.
func StockLevels(purchases []Purchase, sales []Sale) StockReport {
	rows := []StockLevel{}
	index := map[string]int{}
	row := func(product string) *StockLevel {
		product = strings.TrimSpace(product)
		key := strings.ToLower(product)
		i, ok := index[key]
		if !ok {
			index[key] = len(rows)
			rows = append(rows, StockLevel{Product: product, Purchased: decimal.Zero, Sold: decimal.Zero})
			i = len(rows) - 1
		}
		return &rows[i]
	}

	for _, p := range purchases {
		if strings.TrimSpace(p.Product) == "" {
			continue
		}
		r := row(p.Product)
		r.Purchased = r.Purchased.Add(p.Quantity)
	}
	for _, s := range sales {
		for _, g := range s.Goods {
			if strings.TrimSpace(g.Product) == "" {
				continue
			}
			r := row(g.Product)
			r.Sold = r.Sold.Add(g.Quantity)
		}
	}

	report := StockReport{Items: rows}
	for i := range report.Items {
		r := &report.Items[i]
		r.Available = r.Purchased.Sub(r.Sold)
		r.Status = stockStatus(r.Available)
		if r.Status == StockOut {
			report.OutOfStock++
		}
	}
	sort.SliceStable(report.Items, func(i, j int) bool {
		return strings.ToLower(report.Items[i].Product) < strings.ToLower(report.Items[j].Product)
	})
	return report
}

func stockStatus(available decimal.Decimal) string {
	switch {
	case available.Sign() <= 0:
		return StockOut
	case available.LessThan(decimal.NewFromInt(LowStockKg)):
		return StockLow
	default:
		return StockIn
	}
}

// SupplierBalances sums what is still owed to each supplier, using the same
// due resolution as every other aggregate. Suppliers with nothing owed stay
// listed. Order is descending owed, then name.
func SupplierBalances(purchases []Purchase) []SupplierBalance {
	out := []SupplierBalance{}
	index := map[string]int{}
	for _, p := range purchases {
		name := strings.TrimSpace(p.SupplierName)
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			index[name] = len(out)
			out = append(out, SupplierBalance{Name: name, TotalOwed: decimal.Zero})
			i = len(out) - 1
		}
		sb := &out[i]
		sb.Bills++
		sb.TotalOwed = sb.TotalOwed.Add(p.Due())
		if p.Mobile != "" {
			sb.Mobile = p.Mobile
		}
		if !p.Date.Before(sb.LastBillDate) {
			sb.LastBillDate = p.Date
			sb.LastBillNo = p.BillNo
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].TotalOwed.Cmp(out[j].TotalOwed); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}
