package report

import (
	"fmt"

	"github.com/go-analyze/charts"

	"gitlab.com/thantzin/agencydesk/internal/models"
)

// CategoryChartPNG renders a pie chart of expense totals per category.
// Returns the PNG image bytes, or an error when there are no expenses.
func CategoryChartPNG(entries []models.FinanceEntry, title string) ([]byte, error) {
	breakdown := CategoryBreakdown(entries)

	var values []float64
	var labels []string
	for category, amounts := range breakdown {
		if amounts.Expense.IsZero() {
			continue
		}
		labels = append(labels, string(category))
		values = append(values, amounts.Expense.InexactFloat64())
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}
