package server

import (
	"context"
	"time"

	"gitlab.com/thantzin/agencydesk/internal/logger"
	"gitlab.com/thantzin/agencydesk/internal/report"
)

// startRefreshLoop periodically recomputes the dashboard aggregates so the
// /v1/dashboard endpoint serves fresh numbers without reading both
// collections on every request.
func (s *Server) startRefreshLoop(ctx context.Context) {
	if s.cfg.RefreshInterval <= 0 {
		logger.Log.Info().Msg("Dashboard refresh loop is disabled")
		return
	}

	logger.Log.Info().
		Dur("interval", s.cfg.RefreshInterval).
		Msg("Dashboard refresh loop started")

	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	// Run once immediately so the first dashboard request never sees zeroes.
	if err := s.refresh(); err != nil {
		logger.Log.Error().Err(err).Msg("Dashboard refresh failed")
	}

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info().Msg("Dashboard refresh loop stopped")
			return
		case <-ticker.C:
			if err := s.refresh(); err != nil {
				logger.Log.Error().Err(err).Msg("Dashboard refresh failed")
			}
		}
	}
}

// refresh recomputes the cached stats from the current collections.
func (s *Server) refresh() error {
	customers, err := s.customers.List()
	if err != nil {
		return err
	}
	entries, err := s.finance.List()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.dashboard = report.Stats(customers, entries)
	s.refreshedAt = time.Now()
	s.mu.Unlock()
	return nil
}
