// Package report derives aggregates from loaded collections.
//
// Every function here is pure: it reads the given snapshot, computes, and
// never touches the store. Callers re-derive on demand.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/thantzin/agencydesk/internal/models"
)

// Totals holds income and expense sums over a set of entries.
type Totals struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetBalance   decimal.Decimal `json:"netBalance"`
}

// RangeTotals sums entries whose transaction date falls within [start, end]
// inclusive. Dates are fixed-width YYYY-MM-DD strings, so plain string
// comparison is chronological.
func RangeTotals(entries []models.FinanceEntry, start, end string) Totals {
	t := Totals{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	for _, e := range entries {
		if e.TransactionDate < start || e.TransactionDate > end {
			continue
		}
		switch e.EntryType {
		case models.EntryIncome:
			t.TotalIncome = t.TotalIncome.Add(e.Amount)
		case models.EntryExpense:
			t.TotalExpense = t.TotalExpense.Add(e.Amount)
		}
	}
	t.NetBalance = t.TotalIncome.Sub(t.TotalExpense)
	return t
}

// AllTotals sums every entry regardless of date.
func AllTotals(entries []models.FinanceEntry) Totals {
	t := Totals{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	for _, e := range entries {
		switch e.EntryType {
		case models.EntryIncome:
			t.TotalIncome = t.TotalIncome.Add(e.Amount)
		case models.EntryExpense:
			t.TotalExpense = t.TotalExpense.Add(e.Amount)
		}
	}
	t.NetBalance = t.TotalIncome.Sub(t.TotalExpense)
	return t
}

// CategoryAmounts holds the income and expense accumulated for one category.
type CategoryAmounts struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryBreakdown buckets entries by category. Categories with no entries
// are absent from the result, not zero-filled.
func CategoryBreakdown(entries []models.FinanceEntry) map[models.Category]CategoryAmounts {
	breakdown := make(map[models.Category]CategoryAmounts)
	for _, e := range entries {
		b, ok := breakdown[e.Category]
		if !ok {
			b = CategoryAmounts{Income: decimal.Zero, Expense: decimal.Zero}
		}
		switch e.EntryType {
		case models.EntryIncome:
			b.Income = b.Income.Add(e.Amount)
		case models.EntryExpense:
			b.Expense = b.Expense.Add(e.Amount)
		}
		breakdown[e.Category] = b
	}
	return breakdown
}

// VisaStatusCounts tallies customers per visa status. Absent statuses are
// absent keys.
func VisaStatusCounts(customers []models.Customer) map[models.VisaStatus]int {
	counts := make(map[models.VisaStatus]int)
	for _, c := range customers {
		counts[c.VisaStatus]++
	}
	return counts
}

// MonthLabel renders a transaction date as a "January 2006" group label.
func MonthLabel(transactionDate string) (string, bool) {
	d, err := time.ParseInLocation(models.TransactionDateLayout, transactionDate, time.Local)
	if err != nil {
		return "", false
	}
	return d.Format("January 2006"), true
}

// MonthlyGroups buckets entries under "Month Year" labels in local calendar
// time, preserving each entry's relative order. Entries with unparseable
// dates are skipped.
func MonthlyGroups(entries []models.FinanceEntry) map[string][]models.FinanceEntry {
	groups := make(map[string][]models.FinanceEntry)
	for _, e := range entries {
		label, ok := MonthLabel(e.TransactionDate)
		if !ok {
			continue
		}
		groups[label] = append(groups[label], e)
	}
	return groups
}

// TopExpenses returns the n largest expense entries ordered by amount
// descending. The sort is stable, so ties keep their original relative order.
func TopExpenses(entries []models.FinanceEntry, n int) []models.FinanceEntry {
	if n <= 0 {
		return []models.FinanceEntry{}
	}
	expenses := make([]models.FinanceEntry, 0)
	for _, e := range entries {
		if e.EntryType == models.EntryExpense {
			expenses = append(expenses, e)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.GreaterThan(expenses[j].Amount)
	})
	if len(expenses) > n {
		expenses = expenses[:n]
	}
	return expenses
}

// ActivityKind distinguishes the source collection of a feed item.
type ActivityKind string

const (
	ActivityCustomer ActivityKind = "customer"
	ActivityFinance  ActivityKind = "finance"
)

// Activity is one item of the recent-activity feed.
type Activity struct {
	Kind        ActivityKind      `json:"kind"`
	Description string            `json:"description"`
	Date        time.Time         `json:"date"`
	VisaStatus  models.VisaStatus `json:"visaStatus,omitempty"`
	EntryType   models.EntryType  `json:"entryType,omitempty"`
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
}

// RecentActivity merges the n most recently created customers and finance
// entries into a single feed sorted by creation time descending, truncated
// to n items.
func RecentActivity(customers []models.Customer, entries []models.FinanceEntry, n int) []Activity {
	if n <= 0 {
		return []Activity{}
	}

	recentCustomers := append([]models.Customer(nil), customers...)
	sort.SliceStable(recentCustomers, func(i, j int) bool {
		return recentCustomers[i].CreatedAt.After(recentCustomers[j].CreatedAt)
	})
	if len(recentCustomers) > n {
		recentCustomers = recentCustomers[:n]
	}

	recentEntries := append([]models.FinanceEntry(nil), entries...)
	sort.SliceStable(recentEntries, func(i, j int) bool {
		return recentEntries[i].CreatedAt.After(recentEntries[j].CreatedAt)
	})
	if len(recentEntries) > n {
		recentEntries = recentEntries[:n]
	}

	feed := make([]Activity, 0, len(recentCustomers)+len(recentEntries))
	for _, c := range recentCustomers {
		feed = append(feed, Activity{
			Kind:        ActivityCustomer,
			Description: "New customer: " + c.FullName,
			Date:        c.CreatedAt,
			VisaStatus:  c.VisaStatus,
		})
	}
	for _, e := range recentEntries {
		amount := e.Amount
		feed = append(feed, Activity{
			Kind:        ActivityFinance,
			Description: string(e.EntryType) + ": " + e.Description,
			Date:        e.CreatedAt,
			EntryType:   e.EntryType,
			Amount:      &amount,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	if len(feed) > n {
		feed = feed[:n]
	}
	return feed
}

// DashboardStats is the headline aggregate block shown on the dashboard.
type DashboardStats struct {
	TotalCustomers int             `json:"totalCustomers"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	NetBalance     decimal.Decimal `json:"netBalance"`
	PendingVisas   int             `json:"pendingVisas"`
	ApprovedVisas  int             `json:"approvedVisas"`
}

// Stats computes the dashboard headline numbers over full collections.
func Stats(customers []models.Customer, entries []models.FinanceEntry) DashboardStats {
	totals := AllTotals(entries)
	counts := VisaStatusCounts(customers)
	return DashboardStats{
		TotalCustomers: len(customers),
		TotalIncome:    totals.TotalIncome,
		TotalExpense:   totals.TotalExpense,
		NetBalance:     totals.NetBalance,
		PendingVisas:   counts[models.VisaPending],
		ApprovedVisas:  counts[models.VisaApproved],
	}
}

// Performance holds the derived ratios of the dashboard summary block.
type Performance struct {
	VisaApprovalRate      decimal.Decimal `json:"visaApprovalRate"`
	AvgIncomePerCustomer  decimal.Decimal `json:"avgIncomePerCustomer"`
	AvgExpensePerCustomer decimal.Decimal `json:"avgExpensePerCustomer"`
	ProfitMargin          decimal.Decimal `json:"profitMargin"`
}

var hundred = decimal.NewFromInt(100)

// PerformanceSummary derives approval rate, per-customer averages and profit
// margin from the headline stats. Divisors of zero yield zero, matching the
// dashboard's guarded arithmetic.
func PerformanceSummary(stats DashboardStats) Performance {
	p := Performance{
		VisaApprovalRate:      decimal.Zero,
		AvgIncomePerCustomer:  decimal.Zero,
		AvgExpensePerCustomer: decimal.Zero,
		ProfitMargin:          decimal.Zero,
	}

	if stats.TotalCustomers > 0 {
		n := decimal.NewFromInt(int64(stats.TotalCustomers))
		p.VisaApprovalRate = decimal.NewFromInt(int64(stats.ApprovedVisas)).Div(n).Mul(hundred).Round(1)
		p.AvgIncomePerCustomer = stats.TotalIncome.Div(n).Round(2)
		p.AvgExpensePerCustomer = stats.TotalExpense.Div(n).Round(2)
	}
	if stats.TotalIncome.IsPositive() {
		p.ProfitMargin = stats.NetBalance.Div(stats.TotalIncome).Mul(hundred).Round(1)
	}
	return p
}
