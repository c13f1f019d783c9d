package handler

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tigoviajes/catalog/internal/cache"
	"github.com/tigoviajes/catalog/internal/domain"
	"github.com/tigoviajes/catalog/internal/fallback"
	"github.com/tigoviajes/catalog/internal/service"
)

var errStoreDown = errors.New("connection refused")

func newPublicApp(t *testing.T, storeErr error) *fiber.App {
	t.Helper()
	c, err := cache.NewMemoryCache(cache.DefaultConfig())
	require.NoError(t, err)

	h := NewPublicHandler(service.NewCatalogService(stubRepos(storeErr), c, time.Minute))
	app := fiber.New()
	app.Get("/header", h.Header)
	app.Get("/home", h.Home)
	app.Get("/offers", h.Offers)
	app.Get("/packages/slug/:slug", h.PackageBySlug)
	app.Get("/packages/:id/related", h.RelatedPackages)
	app.Get("/packages/:id", h.PackageByID)
	app.Get("/destinations/:slug", h.Destination)
	app.Get("/sections/active", h.ActiveSection)
	app.Get("/sections/:slug/packages", h.SectionPackages)
	app.Get("/sections/:slug", h.Section)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	return resp.StatusCode, readBody(t, resp)
}

func TestHome_ServesFallbackWhenNothingIsFeatured(t *testing.T) {
	app := newPublicApp(t, nil)

	status, body := get(t, app, "/home")
	require.Equal(t, fiber.StatusOK, status)

	var got struct {
		Featured      []domain.TravelPackageDisplay `json:"featured"`
		Offers        []domain.TravelPackageDisplay `json:"offers"`
		ActiveSection *domain.SectionPage           `json:"active_section"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))

	want := fallback.Featured()
	require.Len(t, got.Featured, len(want))
	assert.Equal(t, want[0].Slug, got.Featured[0].Slug)
	assert.Empty(t, got.Offers)
	assert.Nil(t, got.ActiveSection)
}

func TestHome_StoreFailureDegrades(t *testing.T) {
	status, body := get(t, newPublicApp(t, errStoreDown), "/home")
	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, body, "connection refused")

	var got struct {
		Featured      []domain.TravelPackageDisplay `json:"featured"`
		Offers        []domain.TravelPackageDisplay `json:"offers"`
		ActiveSection *domain.SectionPage           `json:"active_section"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Len(t, got.Featured, len(fallback.Featured()))
	assert.NotNil(t, got.Offers)
	assert.Empty(t, got.Offers)
	assert.Nil(t, got.ActiveSection)
}

func TestPublicPages_NeverFailOnStoreErrors(t *testing.T) {
	app := newPublicApp(t, errStoreDown)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/header", fiber.StatusOK, `{"destinations":[],"special_sections":[],"nav_links":[]}`},
		{"/offers", fiber.StatusOK, `[]`},
		{"/sections/active", fiber.StatusOK, `{"section":null}`},
		{"/sections/verano-2026/packages", fiber.StatusOK, `[]`},
		{"/sections/verano-2026", fiber.StatusNotFound, ""},
		{"/destinations/chile", fiber.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(t, app, tt.path)
			assert.Equal(t, tt.status, status)
			assert.NotContains(t, body, "connection refused")
			if tt.body != "" {
				assert.JSONEq(t, tt.body, body)
			}
		})
	}
}

func TestPackageBySlug(t *testing.T) {
	t.Run("missing package is 404", func(t *testing.T) {
		status, _ := get(t, newPublicApp(t, nil), "/packages/slug/cataratas-iguazu")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("store failure serves the built-in package", func(t *testing.T) {
		status, body := get(t, newPublicApp(t, errStoreDown), "/packages/slug/cataratas-iguazu")
		require.Equal(t, fiber.StatusOK, status)

		var pkg domain.TravelPackageDisplay
		require.NoError(t, json.Unmarshal([]byte(body), &pkg))
		assert.Equal(t, "cataratas-iguazu", pkg.Slug)
		assert.NotEmpty(t, pkg.Price)
	})

	t.Run("store failure with unknown slug is 404", func(t *testing.T) {
		status, _ := get(t, newPublicApp(t, errStoreDown), "/packages/slug/nope")
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestRelatedPackages(t *testing.T) {
	app := newPublicApp(t, nil)

	for _, q := range []string{"?limit=0", "?limit=13", "?limit=-1"} {
		status, _ := get(t, app, "/packages/pkg-1/related"+q)
		assert.Equal(t, fiber.StatusBadRequest, status, q)
	}

	status, _ := get(t, app, "/packages/pkg-1/related")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body := get(t, newPublicApp(t, errStoreDown), "/packages/verano-2026-1/related?limit=2")
	require.Equal(t, fiber.StatusOK, status)
	var related []domain.TravelPackageDisplay
	require.NoError(t, json.Unmarshal([]byte(body), &related))
	require.Len(t, related, 2)
	for _, p := range related {
		assert.NotEqual(t, "verano-2026-1", p.ID)
	}
}

type destinationPage struct {
	Destination *domain.DestinationProfile    `json:"destination"`
	Packages    []domain.TravelPackageDisplay `json:"packages"`
}

func TestDestination(t *testing.T) {
	t.Run("unknown slug is 404", func(t *testing.T) {
		status, _ := get(t, newPublicApp(t, nil), "/destinations/chile")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("missing row serves the built-in destination", func(t *testing.T) {
		status, body := get(t, newPublicApp(t, nil), "/destinations/argentina")
		require.Equal(t, fiber.StatusOK, status)

		var page destinationPage
		require.NoError(t, json.Unmarshal([]byte(body), &page))
		require.NotNil(t, page.Destination)
		assert.Equal(t, "Argentina", page.Destination.Name)
		assert.NotEmpty(t, page.Destination.Highlights)
		assert.Len(t, page.Packages, len(fallback.ByDestination("argentina")))
	})

	t.Run("store failure serves the built-in destination", func(t *testing.T) {
		status, body := get(t, newPublicApp(t, errStoreDown), "/destinations/brasil")
		require.Equal(t, fiber.StatusOK, status)

		var page destinationPage
		require.NoError(t, json.Unmarshal([]byte(body), &page))
		assert.Equal(t, "Brasil", page.Destination.Name)
		require.Len(t, page.Packages, 1)
		assert.Equal(t, "brasil", page.Packages[0].DestinationSlug)
	})
}

func TestSections(t *testing.T) {
	app := newPublicApp(t, nil)

	status, _ := get(t, app, "/sections/verano-2026")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body := get(t, app, "/sections/active")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"section":null}`, body)

	status, body = get(t, app, "/sections/verano-2026/packages")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, body)
}

func TestHeader(t *testing.T) {
	status, body := get(t, newPublicApp(t, nil), "/header")
	require.Equal(t, fiber.StatusOK, status)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Contains(t, got, "destinations")
	assert.Contains(t, got, "special_sections")
	assert.JSONEq(t, `[]`, string(got["nav_links"]))
}
