package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/thantzin/agencydesk/internal/models"
	"gitlab.com/thantzin/agencydesk/internal/search"
)

// listCustomers returns the customer collection, optionally filtered by ?q=
// and ordered by ?sort= / ?dir=.
func (s *Server) listCustomers(c *gin.Context) {
	customers, err := s.customers.List()
	if err != nil {
		writeError(c, err)
		return
	}

	customers = search.FilterCustomers(customers, c.Query("q"))
	if field := c.Query("sort"); field != "" {
		customers = search.SortCustomers(customers, field, search.Direction(c.DefaultQuery("dir", "asc")))
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers, "count": len(customers)})
}

func (s *Server) createCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// New records default to Pending on both status columns.
	if customer.MedicalFitnessStatus == "" {
		customer.MedicalFitnessStatus = models.MedicalPending
	}
	if customer.VisaStatus == "" {
		customer.VisaStatus = models.VisaPending
	}

	if err := s.customers.Add(&customer); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (s *Server) updateCustomer(c *gin.Context) {
	var upd models.CustomerUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.customers.Update(c.Param("id"), upd); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (s *Server) deleteCustomer(c *gin.Context) {
	if err := s.customers.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// listEntries returns finance entries, optionally filtered by ?q= and
// ?type=Income|Expense, ordered by ?sort= / ?dir=.
func (s *Server) listEntries(c *gin.Context) {
	entries, err := s.finance.List()
	if err != nil {
		writeError(c, err)
		return
	}

	entries = search.FilterEntries(entries, c.Query("q"), models.EntryType(c.Query("type")))
	if field := c.Query("sort"); field != "" {
		entries = search.SortEntries(entries, field, search.Direction(c.DefaultQuery("dir", "asc")))
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

func (s *Server) createEntry(c *gin.Context) {
	var entry models.FinanceEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.finance.Add(&entry); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) updateEntry(c *gin.Context) {
	var upd models.FinanceEntryUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.finance.Update(c.Param("id"), upd); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (s *Server) deleteEntry(c *gin.Context) {
	if err := s.finance.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
