package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gitlab.com/thantzin/agencydesk/internal/export"
	"gitlab.com/thantzin/agencydesk/internal/models"
	"gitlab.com/thantzin/agencydesk/internal/report"
)

// defaultRange covers the current month up to today.
func defaultRange(now time.Time) (string, string) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start.Format(models.TransactionDateLayout), now.Format(models.TransactionDateLayout)
}

// getDashboard serves the cached headline stats maintained by the refresh
// loop. A first request before the loop has run computes them inline.
func (s *Server) getDashboard(c *gin.Context) {
	s.mu.RLock()
	stats, refreshedAt := s.dashboard, s.refreshedAt
	s.mu.RUnlock()

	if refreshedAt.IsZero() {
		if err := s.refresh(); err != nil {
			writeError(c, err)
			return
		}
		s.mu.RLock()
		stats, refreshedAt = s.dashboard, s.refreshedAt
		s.mu.RUnlock()
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats, "refreshedAt": refreshedAt})
}

func (s *Server) getActivity(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	customers, err := s.customers.List()
	if err != nil {
		writeError(c, err)
		return
	}
	entries, err := s.finance.List()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": report.RecentActivity(customers, entries, limit)})
}

// getSummary reports totals, visa pipeline counts and the category breakdown
// for a date range. The range defaults to the current month.
func (s *Server) getSummary(c *gin.Context) {
	defStart, defEnd := defaultRange(time.Now())
	start := c.DefaultQuery("start", defStart)
	end := c.DefaultQuery("end", defEnd)

	customers, err := s.customers.List()
	if err != nil {
		writeError(c, err)
		return
	}
	entries, err := s.finance.List()
	if err != nil {
		writeError(c, err)
		return
	}

	ranged := make([]models.FinanceEntry, 0, len(entries))
	for _, e := range entries {
		if e.TransactionDate >= start && e.TransactionDate <= end {
			ranged = append(ranged, e)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"start":             start,
		"end":               end,
		"totals":            report.RangeTotals(entries, start, end),
		"visaStatusCounts":  report.VisaStatusCounts(customers),
		"categoryBreakdown": report.CategoryBreakdown(ranged),
	})
}

func (s *Server) getMonthly(c *gin.Context) {
	entries, err := s.finance.List()
	if err != nil {
		writeError(c, err)
		return
	}

	groups := report.MonthlyGroups(entries)
	months := make(map[string]gin.H, len(groups))
	for label, group := range groups {
		months[label] = gin.H{
			"totals":  report.AllTotals(group),
			"entries": group,
		}
	}
	c.JSON(http.StatusOK, gin.H{"months": months})
}

// getPerformance derives the agency performance summary from the current
// collections.
func (s *Server) getPerformance(c *gin.Context) {
	customers, err := s.customers.List()
	if err != nil {
		writeError(c, err)
		return
	}
	entries, err := s.finance.List()
	if err != nil {
		writeError(c, err)
		return
	}

	stats := report.Stats(customers, entries)
	c.JSON(http.StatusOK, gin.H{
		"stats":       stats,
		"performance": report.PerformanceSummary(stats),
	})
}

func (s *Server) getTopExpenses(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	entries, err := s.finance.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": report.TopExpenses(entries, limit)})
}

func (s *Server) getChart(c *gin.Context) {
	entries, err := s.finance.List()
	if err != nil {
		writeError(c, err)
		return
	}

	png, err := report.CategoryChartPNG(entries, "Expenses by Category")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func serveCSV(c *gin.Context, prefix string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+export.ReportFilename(prefix))
	c.Data(http.StatusOK, "text/csv", data)
}

func (s *Server) exportFinanceCSV(c *gin.Context) {
	entries, err := s.finance.List()
	if err != nil {
		writeError(c, err)
		return
	}
	data, err := export.FinanceCSV(entries)
	if err != nil {
		writeError(c, err)
		return
	}
	serveCSV(c, "finance", data)
}

func (s *Server) exportCustomersCSV(c *gin.Context) {
	customers, err := s.customers.List()
	if err != nil {
		writeError(c, err)
		return
	}
	data, err := export.CustomersCSV(customers)
	if err != nil {
		writeError(c, err)
		return
	}
	serveCSV(c, "customers", data)
}

func (s *Server) exportSummaryCSV(c *gin.Context) {
	defStart, defEnd := defaultRange(time.Now())
	start := c.DefaultQuery("start", defStart)
	end := c.DefaultQuery("end", defEnd)

	customers, err := s.customers.List()
	if err != nil {
		writeError(c, err)
		return
	}
	entries, err := s.finance.List()
	if err != nil {
		writeError(c, err)
		return
	}
	data, err := export.SummaryCSV(customers, entries, start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	serveCSV(c, "report", data)
}
