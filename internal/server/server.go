// Package server exposes the dashboard over a local HTTP JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"gitlab.com/thantzin/agencydesk/internal/config"
	"gitlab.com/thantzin/agencydesk/internal/export"
	"gitlab.com/thantzin/agencydesk/internal/kvstore"
	"gitlab.com/thantzin/agencydesk/internal/logger"
	"gitlab.com/thantzin/agencydesk/internal/models"
	"gitlab.com/thantzin/agencydesk/internal/report"
	"gitlab.com/thantzin/agencydesk/internal/repository"
)

// Server wires the repositories and derivations behind HTTP handlers.
type Server struct {
	cfg       *config.Config
	kv        kvstore.KV
	customers *repository.CustomerRepository
	finance   *repository.FinanceRepository
	settings  *repository.SettingsRepository
	backups   *export.BackupManager

	mu          sync.RWMutex
	dashboard   report.DashboardStats
	refreshedAt time.Time
}

// New creates a Server over the given store.
func New(cfg *config.Config, kv kvstore.KV) *Server {
	customers := repository.NewCustomerRepository(kv)
	finance := repository.NewFinanceRepository(kv)
	settings := repository.NewSettingsRepository(kv)
	return &Server{
		cfg:       cfg,
		kv:        kv,
		customers: customers,
		finance:   finance,
		settings:  settings,
		backups:   export.NewBackupManager(kv, customers, finance, settings),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Static("/documents", s.cfg.DocumentsDir)

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		v1.GET("/customers", s.listCustomers)
		v1.POST("/customers", s.createCustomer)
		v1.PATCH("/customers/:id", s.updateCustomer)
		v1.DELETE("/customers/:id", s.deleteCustomer)

		v1.GET("/finance", s.listEntries)
		v1.POST("/finance", s.createEntry)
		v1.PATCH("/finance/:id", s.updateEntry)
		v1.DELETE("/finance/:id", s.deleteEntry)

		v1.GET("/dashboard", s.getDashboard)
		v1.GET("/activity", s.getActivity)
		v1.GET("/reports/summary", s.getSummary)
		v1.GET("/reports/monthly", s.getMonthly)
		v1.GET("/reports/top-expenses", s.getTopExpenses)
		v1.GET("/reports/performance", s.getPerformance)
		v1.GET("/reports/chart.png", s.getChart)

		v1.GET("/export/finance.csv", s.exportFinanceCSV)
		v1.GET("/export/customers.csv", s.exportCustomersCSV)
		v1.GET("/export/report.csv", s.exportSummaryCSV)

		v1.GET("/backup", s.exportBackup)
		v1.POST("/backup", s.importBackup)
		v1.POST("/backup/restore", s.restoreBackup)
		v1.DELETE("/data", s.clearData)

		v1.GET("/theme", s.getTheme)
		v1.PUT("/theme", s.setTheme)

		v1.POST("/documents", s.uploadDocument)
		v1.GET("/stats/storage", s.getStorageStats)
	}

	return router
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
// The aggregate refresh loop runs alongside the listener.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Router(),
	}

	go s.startRefreshLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info().Str("addr", s.cfg.ListenAddr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var vErr *models.ValidationError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.Is(err, export.ErrBadFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, export.ErrNoBackup):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, kvstore.ErrQuotaExceeded):
		c.JSON(http.StatusInsufficientStorage, gin.H{"error": err.Error()})
	default:
		logger.Log.Error().Err(err).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
