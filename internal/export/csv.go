// Package export produces CSV reports and full JSON backups.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"gitlab.com/thantzin/agencydesk/internal/models"
	"gitlab.com/thantzin/agencydesk/internal/report"
)

// FinanceCSV renders finance entries as CSV, one row per entry. Fields
// containing delimiters or quotes are quoted with doubled internal quotes.
func FinanceCSV(entries []models.FinanceEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Date", "Type", "Category", "Amount", "Description"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range entries {
		row := []string{
			entries[i].TransactionDate,
			string(entries[i].EntryType),
			string(entries[i].Category),
			entries[i].Amount.StringFixed(2),
			entries[i].Description,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// CustomersCSV renders customer records as CSV matching the visible table
// columns.
func CustomersCSV(customers []models.Customer) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Full Name", "Passport Number", "Medical Fitness", "Agent Name", "Visa Status", "Created At"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range customers {
		row := []string{
			customers[i].FullName,
			customers[i].PassportNumber,
			string(customers[i].MedicalFitnessStatus),
			customers[i].AgentName,
			string(customers[i].VisaStatus),
			customers[i].CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// SummaryCSV renders the business report as Type,Category,Value rows:
// overall totals, visa status tallies, then per-category income and expense
// over the given date range.
func SummaryCSV(customers []models.Customer, entries []models.FinanceEntry, start, end string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Type", "Category", "Value"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	filtered := make([]models.FinanceEntry, 0, len(entries))
	for _, e := range entries {
		if e.TransactionDate >= start && e.TransactionDate <= end {
			filtered = append(filtered, e)
		}
	}

	totals := report.AllTotals(filtered)
	rows := [][]string{
		{"Summary", "Total Income", totals.TotalIncome.StringFixed(2)},
		{"Summary", "Total Expense", totals.TotalExpense.StringFixed(2)},
		{"Summary", "Net Balance", totals.NetBalance.StringFixed(2)},
		{"Summary", "Total Customers", strconv.Itoa(len(customers))},
	}

	counts := report.VisaStatusCounts(customers)
	for _, status := range []models.VisaStatus{models.VisaPending, models.VisaProcessing, models.VisaApproved, models.VisaRejected} {
		if n, ok := counts[status]; ok {
			rows = append(rows, []string{"Visa Status", string(status), strconv.Itoa(n)})
		}
	}

	breakdown := report.CategoryBreakdown(filtered)
	categories := []models.Category{models.CategoryVisa, models.CategoryMedical, models.CategoryTicket, models.CategoryServiceCharge, models.CategoryOthers}
	for _, cat := range categories {
		if amounts, ok := breakdown[cat]; ok {
			rows = append(rows, []string{"Category Income", string(cat), amounts.Income.StringFixed(2)})
		}
	}
	for _, cat := range categories {
		if amounts, ok := breakdown[cat]; ok {
			rows = append(rows, []string{"Category Expense", string(cat), amounts.Expense.StringFixed(2)})
		}
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportFilename creates a dated filename such as "finance-report-2024-01-31.csv".
func ReportFilename(prefix string) string {
	return fmt.Sprintf("%s-%s.csv", prefix, time.Now().Format("2006-01-02"))
}
