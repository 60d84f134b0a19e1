package server

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gitlab.com/thantzin/agencydesk/internal/export"
	"gitlab.com/thantzin/agencydesk/internal/logger"
	"gitlab.com/thantzin/agencydesk/internal/models"
)

func (s *Server) exportBackup(c *gin.Context) {
	data, err := s.backups.Export()
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+export.BackupFilename())
	c.Data(http.StatusOK, "application/json", data)
}

// importBackup replaces both collections with the uploaded payload. The
// manager validates everything up front and snapshots the current state, so
// a rejected payload leaves the store untouched.
func (s *Server) importBackup(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	if err := s.backups.Import(data); err != nil {
		writeError(c, err)
		return
	}
	logger.Log.Info().Int("bytes", len(data)).Msg("Backup imported")
	c.JSON(http.StatusOK, gin.H{"status": "imported"})
}

func (s *Server) restoreBackup(c *gin.Context) {
	if err := s.backups.Restore(); err != nil {
		writeError(c, err)
		return
	}
	logger.Log.Info().Msg("Pre-clear snapshot restored")
	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}

func (s *Server) clearData(c *gin.Context) {
	if err := s.backups.Clear(); err != nil {
		writeError(c, err)
		return
	}
	logger.Log.Warn().Msg("All records cleared")
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func (s *Server) getTheme(c *gin.Context) {
	theme, err := s.settings.Theme()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

func (s *Server) setTheme(c *gin.Context) {
	var body struct {
		Theme models.Theme `json:"theme"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.settings.SetTheme(body.Theme); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": body.Theme})
}

// uploadDocument stores an attachment under the documents directory and
// returns the URL to link into a customer record.
func (s *Server) uploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(s.cfg.DocumentsDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		writeError(c, err)
		return
	}

	logger.Log.Info().Str("file", name).Int64("size", file.Size).Msg("Document stored")
	c.JSON(http.StatusCreated, gin.H{
		"documentUrl":  "/documents/" + name,
		"documentName": file.Filename,
	})
}

// getStorageStats reports how much of the store's byte budget the persisted
// collections consume.
func (s *Server) getStorageStats(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"customerCount":     len(customers),
		"financeEntryCount": len(entries),
		"usedBytes":         s.kv.UsedBytes(),
		"quotaBytes":        s.cfg.StoreQuotaBytes,
	})
}
