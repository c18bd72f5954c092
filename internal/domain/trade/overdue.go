package trade

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"agrobooks/internal/platform/timeutil"
)

func SaleDueBills(sales []Sale) []DueBill {
	bills := make([]DueBill, 0, len(sales))
	for _, s := range sales {
		bills = append(bills, DueBill{
			ID:     s.ID,
			BillNo: s.BillNo,
			Party:  s.CustomerName,
			Mobile: s.Mobile,
			Date:   s.Date,
			Due:    s.Due(),
		})
	}
	return bills
}

func PurchaseDueBills(purchases []Purchase) []DueBill {
	bills := make([]DueBill, 0, len(purchases))
	for _, p := range purchases {
		bills = append(bills, DueBill{
			ID:     p.ID,
			BillNo: p.BillNo,
			Party:  p.SupplierName,
			Mobile: p.Mobile,
			Date:   p.Date,
			Due:    p.Due(),
		})
	}
	return bills
}

// GroupOverdue keeps bills with a positive due dated strictly before
// today - thresholdDays and groups them by party. Bills without a date are
// skipped. Groups come back by descending total due, then party name; bills
// inside a group keep their input order.
func GroupOverdue(bills []DueBill, thresholdDays int, today time.Time) []OverdueGroup {
	if thresholdDays < 0 {
		thresholdDays = DefaultOverdueDays
	}
	cutoff := timeutil.Day(today).AddDate(0, 0, -thresholdDays)

	groups := []OverdueGroup{}
	index := map[string]int{}
	for _, bill := range bills {
		if bill.Date.IsZero() || bill.Due.Sign() <= 0 {
			continue
		}
		if !timeutil.Day(bill.Date).Before(cutoff) {
			continue
		}
		i, ok := index[bill.Party]
		if !ok {
			index[bill.Party] = len(groups)
			groups = append(groups, OverdueGroup{Party: bill.Party, TotalDue: decimal.Zero})
			i = len(groups) - 1
		}
		g := &groups[i]
		g.TotalDue = g.TotalDue.Add(bill.Due)
		if g.Mobile == "" {
			g.Mobile = bill.Mobile
		}
		g.Bills = append(g.Bills, bill)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].TotalDue.Cmp(groups[j].TotalDue); c != 0 {
			return c > 0
		}
		return groups[i].Party < groups[j].Party
	})
	return groups
}

// TotalDue sums the groups.
func TotalDue(groups []OverdueGroup) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.TotalDue)
	}
	return total
}
