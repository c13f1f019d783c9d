package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/tigoviajes/catalog/internal/cache"
	"github.com/tigoviajes/catalog/internal/display"
	"github.com/tigoviajes/catalog/internal/service"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// slugTarget describes a collection whose slug derives from another field
type slugTarget struct {
	collection string
	source     string
}

var targets = []slugTarget{
	{collection: "destinations", source: "name"},
	{collection: "packages", source: "name"},
	{collection: "special_sections", source: "title"},
}

var missingSlug = bson.M{
	"$or": []bson.M{
		{"slug": bson.M{"$exists": false}},
		{"slug": ""},
		{"slug": nil},
	},
}

func main() {
	mongoURI := flag.String("mongo", "", "MongoDB URI (required)")
	dbName := flag.String("db", "tigo", "Database name")
	redisAddr := flag.String("redis", "", "Redis address of the shared cache to invalidate after writing")
	dryRun := flag.Bool("dry-run", true, "Preview changes without writing (default: true)")
	flag.Parse()

	if *mongoURI == "" {
		*mongoURI = os.Getenv("MONGODB_URI")
		if *mongoURI == "" {
			log.Fatal("MongoDB URI is required. Use -mongo flag or MONGODB_URI env var")
		}
	}

	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(*mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(*dbName)

	fmt.Println("=== Slug Backfill ===")
	fmt.Printf("Database: %s\n", *dbName)
	fmt.Printf("Dry Run: %v\n\n", *dryRun)

	var total int
	for _, target := range targets {
		total += backfill(ctx, db.Collection(target.collection), target, *dryRun)
	}

	fmt.Printf("\n--- Packages without destination_slug ---\n")
	total += backfillDestinationSlugs(ctx, db.Collection("packages"), *dryRun)

	fmt.Println("\n=== Backfill Summary ===")
	fmt.Printf("Documents updated: %d\n", total)

	if *dryRun {
		fmt.Println("\n⚠️  This was a DRY RUN. No data was modified.")
		fmt.Println("Run with -dry-run=false to apply changes.")
		return
	}

	if total > 0 && *redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: *redisAddr})
		defer redisClient.Close()
		inv := service.NewInvalidator(cache.NewRedisCache(redisClient))
		for _, invalidate := range []func(context.Context) error{inv.InvalidatePackages, inv.InvalidateDestinations, inv.InvalidateSections} {
			if err := invalidate(ctx); err != nil {
				log.Printf("  ERROR invalidating cache: %v", err)
			}
		}
		fmt.Println("Cache tags invalidated")
	}
	fmt.Println("\n✅ Backfill complete!")
}

// backfill assigns a unique slug to every document of coll that lacks one
func backfill(ctx context.Context, coll *mongo.Collection, target slugTarget, dryRun bool) int {
	fmt.Printf("--- %s ---\n", target.collection)

	taken, err := existingSlugs(ctx, coll)
	if err != nil {
		log.Fatalf("Failed to load slugs of %s: %v", target.collection, err)
	}

	cursor, err := coll.Find(ctx, missingSlug)
	if err != nil {
		log.Fatalf("Failed to query %s: %v", target.collection, err)
	}
	defer cursor.Close(ctx)

	var updated, skipped int
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}

		source, _ := doc[target.source].(string)
		base := display.Slugify(source)
		if base == "" {
			skipped++
			continue
		}
		slug := uniqueSlug(base, taken)
		taken[slug] = struct{}{}

		fmt.Printf("  %v: %q -> %s\n", doc["_id"], truncate(source, 40), slug)
		if !dryRun {
			if _, err := coll.UpdateByID(ctx, doc["_id"], bson.M{"$set": bson.M{"slug": slug}}); err != nil {
				log.Printf("  ERROR updating %v: %v", doc["_id"], err)
				continue
			}
		}
		updated++
	}

	fmt.Printf("%s: %d updated, %d skipped (empty %s)\n\n", target.collection, updated, skipped, target.source)
	return updated
}

// backfillDestinationSlugs derives destination_slug from the destination label
func backfillDestinationSlugs(ctx context.Context, coll *mongo.Collection, dryRun bool) int {
	cursor, err := coll.Find(ctx, bson.M{
		"destination": bson.M{"$exists": true, "$ne": ""},
		"$or": []bson.M{
			{"destination_slug": bson.M{"$exists": false}},
			{"destination_slug": ""},
		},
	})
	if err != nil {
		log.Fatalf("Failed to query packages: %v", err)
	}
	defer cursor.Close(ctx)

	var updated int
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		destination, _ := doc["destination"].(string)
		slug := display.Slugify(destination)
		if slug == "" {
			continue
		}

		fmt.Printf("  %v: %q -> %s\n", doc["_id"], destination, slug)
		if !dryRun {
			if _, err := coll.UpdateByID(ctx, doc["_id"], bson.M{"$set": bson.M{"destination_slug": slug}}); err != nil {
				log.Printf("  ERROR updating %v: %v", doc["_id"], err)
				continue
			}
		}
		updated++
	}
	fmt.Printf("packages: %d destination slugs updated\n", updated)
	return updated
}

func existingSlugs(ctx context.Context, coll *mongo.Collection) (map[string]struct{}, error) {
	values, err := coll.Distinct(ctx, "slug", bson.M{"slug": bson.M{"$nin": bson.A{"", nil}}})
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out[s] = struct{}{}
		}
	}
	return out, nil
}

// uniqueSlug appends -2, -3, ... to base until it is free
func uniqueSlug(base string, taken map[string]struct{}) string {
	if _, ok := taken[base]; !ok {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
