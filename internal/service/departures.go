package service

import (
	"context"
	"fmt"

	"github.com/tigoviajes/catalog/internal/domain"
)

// listingDateCap is how many upcoming dates a package card shows
const listingDateCap = 4

// departureDatesByPackage loads the departure dates of every package in one
// query and groups them by package id, keeping at most limit dates per
// package (limit <= 0 keeps all). Dates stay in ascending order. Every
// requested id is present in the result, possibly with an empty list.
func departureDatesByPackage(ctx context.Context, repo domain.DepartureDateRepository, packageIDs []string, activeOnly bool, limit int) (map[string][]*domain.DepartureDate, error) {
	grouped := make(map[string][]*domain.DepartureDate, len(packageIDs))
	if len(packageIDs) == 0 {
		return grouped, nil
	}
	for _, id := range packageIDs {
		grouped[id] = []*domain.DepartureDate{}
	}

	rows, err := repo.ListByPackageIDs(ctx, packageIDs, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch departure dates: %w", err)
	}

	for _, row := range rows {
		current, requested := grouped[row.PackageID]
		if !requested {
			continue
		}
		if limit > 0 && len(current) >= limit {
			continue
		}
		grouped[row.PackageID] = append(current, row)
	}
	return grouped, nil
}

func packageIDs(pkgs []*domain.Package) []string {
	ids := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		ids = append(ids, p.ID)
	}
	return ids
}
