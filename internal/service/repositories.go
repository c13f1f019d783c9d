package service

import (
	"github.com/tigoviajes/catalog/internal/domain"
	"github.com/tigoviajes/catalog/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories groups the content store collections the services read and write
type Repositories struct {
	Packages       domain.PackageRepository
	DepartureDates domain.DepartureDateRepository
	Itinerary      domain.ItineraryRepository
	Destinations   domain.DestinationRepository
	Sections       domain.SectionRepository
	Features       domain.SectionFeatureRepository
}

// NewMongoRepositories wires every repository against one database
func NewMongoRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Packages:       repository.NewMongoPackageRepository(db),
		DepartureDates: repository.NewMongoDepartureDateRepository(db),
		Itinerary:      repository.NewMongoItineraryRepository(db),
		Destinations:   repository.NewMongoDestinationRepository(db),
		Sections:       repository.NewMongoSectionRepository(db),
		Features:       repository.NewMongoSectionFeatureRepository(db),
	}
}
