package repository

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/tigoviajes/catalog/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupTestDB spins up a fresh MongoDB container and returns the database
// connection along with a cleanup function.
func setupTestDB(t *testing.T) (*mongo.Database, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in -short mode")
	}
	ctx := context.Background()

	mongodbContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}

	endpoint, err := mongodbContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	db := mongoClient.Database("catalog_test")
	require.NoError(t, EnsureIndexes(ctx, db))

	return db, func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("failed to disconnect mongo: %v", err)
		}
		if err := mongodbContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %v", err)
		}
	}
}

func newTestPackage(slug, destinationSlug string, featured bool) *domain.Package {
	return &domain.Package{
		Slug:            slug,
		Name:            slug,
		Destination:     destinationSlug,
		DestinationSlug: destinationSlug,
		Days:            8,
		Nights:          7,
		BasePrice:       1890,
		Currency:        "USD",
		IsFeatured:      featured,
		IsActive:        true,
	}
}

func TestMongoRepositories(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	pkgRepo := NewMongoPackageRepository(db)
	dateRepo := NewMongoDepartureDateRepository(db)
	itineraryRepo := NewMongoItineraryRepository(db)
	sectionRepo := NewMongoSectionRepository(db)
	featureRepo := NewMongoSectionFeatureRepository(db)
	destRepo := NewMongoDestinationRepository(db)

	t.Run("package filters and ordering", func(t *testing.T) {
		older := newTestPackage("cancun-clasico", "cancun", false)
		require.NoError(t, pkgRepo.Create(ctx, older))
		time.Sleep(5 * time.Millisecond)
		newer := newTestPackage("cancun-premium", "cancun", true)
		require.NoError(t, pkgRepo.Create(ctx, newer))
		other := newTestPackage("bariloche-nieve", "bariloche", true)
		other.IsActive = false
		require.NoError(t, pkgRepo.Create(ctx, other))

		featured, err := pkgRepo.List(ctx, domain.PackageFilter{
			IsActive: domain.Bool(true), IsFeatured: domain.Bool(true), Order: domain.OrderNewest, Limit: 6,
		})
		require.NoError(t, err)
		require.Len(t, featured, 1)
		assert.Equal(t, "cancun-premium", featured[0].Slug)

		byDest, err := pkgRepo.List(ctx, domain.PackageFilter{
			IsActive: domain.Bool(true), DestinationSlug: "cancun", Order: domain.OrderFeaturedFirst,
		})
		require.NoError(t, err)
		require.Len(t, byDest, 2)
		assert.Equal(t, "cancun-premium", byDest[0].Slug)

		siblings, err := pkgRepo.List(ctx, domain.PackageFilter{
			IsActive: domain.Bool(true), DestinationSlug: "cancun", ExcludeSlug: "cancun-premium", Order: domain.OrderNone,
		})
		require.NoError(t, err)
		require.Len(t, siblings, 1)
		assert.Equal(t, "cancun-clasico", siblings[0].Slug)

		n, err := pkgRepo.Count(ctx, domain.PackageFilter{IsActive: domain.Bool(true)})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		got, err := pkgRepo.GetBySlug(ctx, "cancun-clasico")
		require.NoError(t, err)
		assert.Equal(t, older.ID, got.ID)
		assert.NotNil(t, got.IncludedServices)

		_, err = pkgRepo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		dup := newTestPackage("cancun-clasico", "cancun", false)
		assert.ErrorIs(t, pkgRepo.Create(ctx, dup), domain.ErrDuplicateSlug)

		require.NoError(t, pkgRepo.SetFlag(ctx, older.ID, domain.FlagOffer, true))
		offers, err := pkgRepo.List(ctx, domain.PackageFilter{IsOffer: domain.Bool(true)})
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Error(t, pkgRepo.SetFlag(ctx, older.ID, domain.PackageFlag("is_special"), true))
	})

	t.Run("bulk departure dates are sorted and filtered", func(t *testing.T) {
		a := newTestPackage("a-pkg", "x", false)
		b := newTestPackage("b-pkg", "x", false)
		require.NoError(t, pkgRepo.Create(ctx, a))
		require.NoError(t, pkgRepo.Create(ctx, b))

		for _, d := range []struct {
			pkg    string
			date   string
			active bool
		}{
			{a.ID, "2026-01-18", true},
			{a.ID, "2026-01-04", true},
			{a.ID, "2026-01-11", true},
			{b.ID, "2026-02-01", false},
			{b.ID, "2026-01-20", true},
		} {
			require.NoError(t, dateRepo.Create(ctx, &domain.DepartureDate{
				PackageID: d.pkg, DepartureDate: d.date, Price: 100, Currency: "USD", IsActive: d.active,
			}))
		}

		dates, err := dateRepo.ListByPackageIDs(ctx, []string{a.ID, b.ID, "unknown"}, true)
		require.NoError(t, err)
		require.Len(t, dates, 4)
		for i := 1; i < len(dates); i++ {
			assert.LessOrEqual(t, dates[i-1].DepartureDate, dates[i].DepartureDate)
		}

		withInactive, err := dateRepo.ListByPackageIDs(ctx, []string{a.ID, b.ID}, false)
		require.NoError(t, err)
		assert.Len(t, withInactive, 5)

		empty, err := dateRepo.ListByPackageIDs(ctx, nil, true)
		require.NoError(t, err)
		assert.Empty(t, empty)

		all, err := dateRepo.ListByPackage(ctx, b.ID, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		require.NoError(t, dateRepo.DeleteByPackage(ctx, a.ID))
		left, err := dateRepo.ListByPackage(ctx, a.ID, false)
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("itinerary replace", func(t *testing.T) {
		require.NoError(t, itineraryRepo.ReplaceForPackage(ctx, "pkg-it", []*domain.ItineraryDay{
			{DayNumber: 2, Title: "Excursión"},
			{DayNumber: 1, Title: "Llegada"},
		}))
		days, err := itineraryRepo.ListByPackage(ctx, "pkg-it")
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, 1, days[0].DayNumber)

		require.NoError(t, itineraryRepo.ReplaceForPackage(ctx, "pkg-it", []*domain.ItineraryDay{{DayNumber: 1, Title: "Único"}}))
		days, err = itineraryRepo.ListByPackage(ctx, "pkg-it")
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, "Único", days[0].Title)
	})

	t.Run("section detach and features", func(t *testing.T) {
		section := &domain.SpecialSection{Slug: "verano-2026", Title: "Verano 2026", IsActive: true}
		require.NoError(t, sectionRepo.Create(ctx, section))

		p := newTestPackage("punta-cana", "punta-cana", false)
		require.NoError(t, pkgRepo.Create(ctx, p))
		require.NoError(t, pkgRepo.AttachToSection(ctx, section.ID, []string{p.ID}))

		attached, err := pkgRepo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, attached.SpecialSectionID)
		assert.True(t, attached.IsSpecial)

		require.NoError(t, featureRepo.ReplaceForSection(ctx, section.ID, []*domain.SectionFeature{
			{IconName: "Sun", Title: "Sol"}, {IconName: "Waves", Title: "Mar"},
		}))
		features, err := featureRepo.ListBySection(ctx, section.ID)
		require.NoError(t, err)
		require.Len(t, features, 2)
		assert.Equal(t, 1, features[1].DisplayOrder)

		n, err := pkgRepo.DetachFromSection(ctx, section.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		detached, err := pkgRepo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, detached.SpecialSectionID)
		assert.False(t, detached.IsSpecial)

		active, err := sectionRepo.List(ctx, true, 1)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "verano-2026", active[0].Slug)
	})

	t.Run("destinations", func(t *testing.T) {
		require.NoError(t, destRepo.Create(ctx, &domain.Destination{Slug: "cancun", Name: "Cancún", DisplayOrder: 2, IsActive: true}))
		bari := &domain.Destination{Slug: "bariloche", Name: "Bariloche", DisplayOrder: 1, IsActive: true}
		require.NoError(t, destRepo.Create(ctx, bari))

		list, err := destRepo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "bariloche", list[0].Slug)

		require.NoError(t, destRepo.SetActive(ctx, bari.ID, false))
		count, err := destRepo.Count(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		_, err = destRepo.GetBySlug(ctx, "atlantis")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
