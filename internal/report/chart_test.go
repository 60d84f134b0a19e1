package report

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/thantzin/agencydesk/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestCategoryChartPNG(t *testing.T) {
	tests := []struct {
		name        string
		entries     []models.FinanceEntry
		expectError bool
	}{
		{
			name: "renders multiple categories",
			entries: []models.FinanceEntry{
				{EntryType: models.EntryExpense, Category: models.CategoryVisa, Amount: decimal.NewFromInt(120)},
				{EntryType: models.EntryExpense, Category: models.CategoryMedical, Amount: decimal.NewFromInt(80)},
				{EntryType: models.EntryExpense, Category: models.CategoryTicket, Amount: decimal.NewFromInt(300)},
			},
		},
		{
			name: "renders single category",
			entries: []models.FinanceEntry{
				{EntryType: models.EntryExpense, Category: models.CategoryOthers, Amount: decimal.NewFromInt(45)},
			},
		},
		{
			name: "income-only entries have nothing to chart",
			entries: []models.FinanceEntry{
				{EntryType: models.EntryIncome, Category: models.CategoryVisa, Amount: decimal.NewFromInt(500)},
			},
			expectError: true,
		},
		{
			name:        "empty entry list",
			entries:     []models.FinanceEntry{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := CategoryChartPNG(tt.entries, "Expense Breakdown")
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, png)
			require.True(t, bytes.HasPrefix(png, pngMagic))
		})
	}
}
