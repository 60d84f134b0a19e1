package search

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/thantzin/agencydesk/internal/models"
)

func customers() []models.Customer {
	return []models.Customer{
		{ID: "1", FullName: "Aung Myint", PassportNumber: "MA111", AgentName: "Golden Wings", CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "2", FullName: "Zaw Zaw", PassportNumber: "MB222", AgentName: "Shwe Pyi", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "3", FullName: "Hla Hla", PassportNumber: "MC333", AgentName: "Golden Wings", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func entries() []models.FinanceEntry {
	return []models.FinanceEntry{
		{ID: "a", EntryType: models.EntryIncome, Category: models.CategoryVisa, Description: "Visa fee for Aung", Amount: decimal.NewFromInt(300), TransactionDate: "2024-01-05"},
		{ID: "b", EntryType: models.EntryExpense, Category: models.CategoryTicket, Description: "Flight booking", Amount: decimal.NewFromInt(450), TransactionDate: "2024-01-02"},
		{ID: "c", EntryType: models.EntryExpense, Category: models.CategoryMedical, Description: "Medical check", Amount: decimal.NewFromInt(120), TransactionDate: "2024-01-09"},
	}
}

func TestFilterCustomers(t *testing.T) {
	t.Run("matches any designated field", func(t *testing.T) {
		require.Len(t, FilterCustomers(customers(), "golden"), 2)
		require.Len(t, FilterCustomers(customers(), "MB222"), 1)
		require.Len(t, FilterCustomers(customers(), "hla"), 1)
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		require.Len(t, FilterCustomers(customers(), "AUNG"), 1)
	})

	t.Run("empty query keeps everything", func(t *testing.T) {
		require.Len(t, FilterCustomers(customers(), ""), 3)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		require.Empty(t, FilterCustomers(customers(), "nonexistent"))
	})
}

func TestFilterEntries(t *testing.T) {
	t.Run("matches description and category", func(t *testing.T) {
		require.Len(t, FilterEntries(entries(), "visa", ""), 1)
		require.Len(t, FilterEntries(entries(), "medical", ""), 1)
	})

	t.Run("restricts by entry type", func(t *testing.T) {
		require.Len(t, FilterEntries(entries(), "", models.EntryExpense), 2)
		require.Len(t, FilterEntries(entries(), "flight", models.EntryIncome), 0)
	})
}

func TestSortCustomers(t *testing.T) {
	t.Run("by full name ascending", func(t *testing.T) {
		sorted := SortCustomers(customers(), "fullName", Asc)
		require.Equal(t, []string{"Aung Myint", "Hla Hla", "Zaw Zaw"},
			[]string{sorted[0].FullName, sorted[1].FullName, sorted[2].FullName})
	})

	t.Run("by created time descending", func(t *testing.T) {
		sorted := SortCustomers(customers(), "createdAt", Desc)
		require.Equal(t, []string{"1", "3", "2"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	})

	t.Run("unknown field keeps input order", func(t *testing.T) {
		sorted := SortCustomers(customers(), "documentUrl", Asc)
		require.Equal(t, []string{"1", "2", "3"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := customers()
		SortCustomers(in, "fullName", Desc)
		require.Equal(t, "1", in[0].ID)
	})
}

func TestSortEntries(t *testing.T) {
	t.Run("by amount descending", func(t *testing.T) {
		sorted := SortEntries(entries(), "amount", Desc)
		require.Equal(t, []string{"b", "a", "c"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	})

	t.Run("by transaction date ascending", func(t *testing.T) {
		sorted := SortEntries(entries(), "transactionDate", Asc)
		require.Equal(t, []string{"b", "a", "c"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	})

	t.Run("by category ascending", func(t *testing.T) {
		sorted := SortEntries(entries(), "category", Asc)
		require.Equal(t, models.CategoryMedical, sorted[0].Category)
		require.Equal(t, models.CategoryVisa, sorted[2].Category)
	})
}
