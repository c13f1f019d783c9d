package service

import (
	"context"
	"fmt"

	"github.com/tigoviajes/catalog/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DashboardStats are the counters shown on the admin landing page
type DashboardStats struct {
	Packages     PackageStats `json:"packages"`
	Sections     ActiveStats  `json:"sections"`
	Destinations ActiveStats  `json:"destinations"`
}

type PackageStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Featured int64 `json:"featured"`
}

type ActiveStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// DashboardService aggregates content counters for the admin panel
type DashboardService struct {
	repos Repositories
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(repos Repositories) *DashboardService {
	return &DashboardService{repos: repos}
}

// GetStats counts packages, sections and destinations concurrently
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	g, gCtx := errgroup.WithContext(ctx)

	// Packages
	g.Go(func() error {
		var err error
		if stats.Packages.Total, err = s.repos.Packages.Count(gCtx, domain.PackageFilter{}); err != nil {
			return err
		}
		if stats.Packages.Active, err = s.repos.Packages.Count(gCtx, domain.PackageFilter{IsActive: domain.Bool(true)}); err != nil {
			return err
		}
		stats.Packages.Featured, err = s.repos.Packages.Count(gCtx, domain.PackageFilter{IsFeatured: domain.Bool(true)})
		return err
	})

	// Sections
	g.Go(func() error {
		var err error
		if stats.Sections.Total, err = s.repos.Sections.Count(gCtx, false); err != nil {
			return err
		}
		stats.Sections.Active, err = s.repos.Sections.Count(gCtx, true)
		return err
	})

	// Destinations
	g.Go(func() error {
		var err error
		if stats.Destinations.Total, err = s.repos.Destinations.Count(gCtx, false); err != nil {
			return err
		}
		stats.Destinations.Active, err = s.repos.Destinations.Count(gCtx, true)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return stats, nil
}
