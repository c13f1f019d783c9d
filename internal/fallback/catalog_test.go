package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatured_MatchesDisplayedPrices(t *testing.T) {
	got := Featured()
	require.Len(t, got, 4)
	assert.Equal(t, "ARS 440.000", got[0].Price)
	assert.Equal(t, "6 días / 4 noches", got[0].Duration)
	assert.Equal(t, []string{"12 Ene 2026"}, got[0].Dates)
	assert.Equal(t, "USD 990", got[2].Price)
}

func TestLookups(t *testing.T) {
	p := BySlug("cataratas-iguazu")
	require.NotNil(t, p)
	assert.Equal(t, "verano-2026-4", p.ID)
	assert.Equal(t, []string{"1 Feb 2026"}, p.Dates)

	assert.NotNil(t, ByID("verano-2026-1"))
	assert.Nil(t, ByID("missing"))
	assert.Len(t, ByDestination("brasil"), 1)
	assert.Empty(t, ByDestination("chile"))
}

func TestRelated_CompletesWithOtherDestinations(t *testing.T) {
	got := Related("federacion-camboriu", "brasil", 3)
	require.Len(t, got, 3)
	for _, p := range got {
		assert.NotEqual(t, "federacion-camboriu", p.Slug)
	}

	got = Related("cataratas-iguazu", "argentina", 3)
	require.Len(t, got, 3)
	assert.Equal(t, "argentina", got[0].DestinationSlug)
	assert.Equal(t, "argentina", got[1].DestinationSlug)
	assert.Equal(t, "brasil", got[2].DestinationSlug)
}

func TestItems_ReturnsCopies(t *testing.T) {
	a := Items()
	a[0].Package.Name = "changed"
	a[0].Package.IncludedServices[0] = "changed"
	b := Items()
	assert.NotEqual(t, "changed", b[0].Package.Name)
	assert.NotEqual(t, "changed", b[0].Package.IncludedServices[0])
}
