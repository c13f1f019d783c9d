package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tigoviajes/catalog/internal/cache"
	"github.com/tigoviajes/catalog/internal/config"
	"github.com/tigoviajes/catalog/internal/domain"
	"github.com/tigoviajes/catalog/internal/fallback"
	"github.com/tigoviajes/catalog/internal/repository"
	"github.com/tigoviajes/catalog/internal/service"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func str(s string) *string { return &s }

var destinations = []domain.Destination{
	{Slug: "argentina", Name: "Argentina", DisplayOrder: 1, IsActive: true},
	{Slug: "brasil", Name: "Brasil", DisplayOrder: 2, IsActive: true},
}

var summerSection = domain.SpecialSection{
	Slug:             "verano-2026",
	Title:            "Verano 2026",
	Subtitle:         str("Salidas grupales en bus desde Buenos Aires"),
	BadgeText:        str("Temporada de verano"),
	PromoTitle:       str("Reservá con el 30% y congelá el precio"),
	PromoDescription: str("Saldo en cuotas hasta 15 días antes de la salida."),
	CTAText:          str("Ver salidas"),
	CTAURL:           str("/verano-2026"),
	NavLabel:         str("Verano 2026"),
	NavIconName:      str("Sun"),
	NavColor:         str("#f59e0b"),
	IsActive:         true,
	DisplayOrder:     1,
}

var summerFeatures = []*domain.SectionFeature{
	{IconName: "Bus", Title: "Bus de última generación", Description: "Butacas semicama y servicio a bordo"},
	{IconName: "Users", Title: "Coordinador Tigo", Description: "Acompañamiento durante todo el viaje"},
	{IconName: "Check", Title: "Seguro incluido", Description: "Asistencia al viajero en todos los paquetes"},
	{IconName: "Waves", Title: "Termas y playas", Description: "Los destinos favoritos del verano"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	repos := service.NewMongoRepositories(db)

	for i := range destinations {
		dest := destinations[i]
		if _, err := repos.Destinations.GetBySlug(ctx, dest.Slug); err == nil {
			log.Printf("[Seed] Skipping destination %s (exists)", dest.Slug)
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			log.Fatalf("Failed to check destination %s: %v", dest.Slug, err)
		}
		if err := repos.Destinations.Create(ctx, &dest); err != nil {
			log.Fatalf("Failed to create destination %s: %v", dest.Slug, err)
		}
		log.Printf("[Seed] ✓ Destination %s", dest.Slug)
	}

	packageIDs := make([]string, 0)
	for _, it := range fallback.Items() {
		pkg := it.Package
		existing, err := repos.Packages.GetBySlug(ctx, pkg.Slug)
		if err == nil {
			log.Printf("[Seed] Skipping package %s (exists)", pkg.Slug)
			packageIDs = append(packageIDs, existing.ID)
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Fatalf("Failed to check package %s: %v", pkg.Slug, err)
		}

		// store ids are generated, the built-in ids only address the fallback
		pkg.ID = ""
		if err := repos.Packages.Create(ctx, &pkg); err != nil {
			log.Fatalf("Failed to create package %s: %v", pkg.Slug, err)
		}
		for _, day := range it.DepartureDates {
			date := &domain.DepartureDate{
				PackageID:     pkg.ID,
				DepartureDate: day,
				Price:         pkg.BasePrice,
				Currency:      pkg.Currency,
				IsActive:      true,
			}
			if err := repos.DepartureDates.Create(ctx, date); err != nil {
				log.Fatalf("Failed to create departure %s for %s: %v", day, pkg.Slug, err)
			}
		}
		packageIDs = append(packageIDs, pkg.ID)
		log.Printf("[Seed] ✓ Package %s (%d departures)", pkg.Slug, len(it.DepartureDates))
	}

	if _, err := repos.Sections.GetBySlug(ctx, summerSection.Slug); err == nil {
		log.Printf("[Seed] Skipping section %s (exists)", summerSection.Slug)
	} else if errors.Is(err, domain.ErrNotFound) {
		section := summerSection
		if err := repos.Sections.Create(ctx, &section); err != nil {
			log.Fatalf("Failed to create section: %v", err)
		}
		if err := repos.Features.ReplaceForSection(ctx, section.ID, summerFeatures); err != nil {
			log.Fatalf("Failed to create section features: %v", err)
		}
		if err := repos.Packages.AttachToSection(ctx, section.ID, packageIDs); err != nil {
			log.Fatalf("Failed to attach packages: %v", err)
		}
		log.Printf("[Seed] ✓ Section %s with %d packages", section.Slug, len(packageIDs))
	} else {
		log.Fatalf("Failed to check section: %v", err)
	}

	// bump tags so instances sharing the Redis cache drop what they served before the seed
	if cfg.Cache.Driver == config.CacheDriverRedis {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		defer redisClient.Close()
		inv := service.NewInvalidator(cache.NewRedisCache(redisClient))
		for _, invalidate := range []func(context.Context) error{inv.InvalidatePackages, inv.InvalidateDestinations, inv.InvalidateSections} {
			if err := invalidate(ctx); err != nil {
				log.Printf("[Seed] Warning: cache invalidation failed: %v", err)
			}
		}
	}

	log.Println("[Seed] ✓ Catalog seeded")
}
