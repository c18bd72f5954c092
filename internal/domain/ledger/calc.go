package ledger

import (
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/money"
	"agrobooks/internal/platform/timeutil"
)

// Compute builds a running-balance statement. Entries are put in date order
// first; the sort is stable so same-day entries keep their recorded order.
// IN adds to the balance and OUT subtracts; entries of any other type are
// left out of the statement. The input is not modified.
func Compute(entries []Entry) Statement {
	sorted := slices.Clone(entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	st := Statement{
		Rows:     make([]Row, 0, len(sorted)),
		TotalIn:  decimal.Zero,
		TotalOut: decimal.Zero,
	}
	balance := decimal.Zero
	for _, e := range sorted {
		switch e.Type {
		case In:
			st.TotalIn = st.TotalIn.Add(e.Amount)
			balance = balance.Add(e.Amount)
		case Out:
			st.TotalOut = st.TotalOut.Add(e.Amount)
			balance = balance.Sub(e.Amount)
		default:
			continue
		}
		st.Rows = append(st.Rows, Row{Entry: e, RunningBalance: balance, Side: money.Side(balance)})
	}
	st.Balance = balance
	st.Side = money.Side(balance)
	return st
}

func Filter(entries []Entry, c Criteria) []Entry {
	party := strings.TrimSpace(c.Party)
	matchAll := party == "" || strings.EqualFold(party, "All")
	bounded := !c.From.IsZero() && !c.To.IsZero()
	from, to := timeutil.Day(c.From), timeutil.Day(c.To)

	out := []Entry{}
	for _, e := range entries {
		if !matchAll && e.PartyName != party {
			continue
		}
		if bounded {
			d := timeutil.Day(e.Date)
			if d.Before(from) || d.After(to) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// Outflow sums the OUT amounts.
func Outflow(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Type == Out {
			total = total.Add(e.Amount)
		}
	}
	return total
}
