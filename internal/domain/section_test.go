package domain

import (
	"testing"
)

func strPtr(s string) *string {
	return &s
}

func TestHeaderSectionNavLink(t *testing.T) {
	tests := []struct {
		name    string
		section HeaderSection
		want    NavLink
	}{
		{
			name:    "defaults when nav styling is absent",
			section: HeaderSection{Slug: "verano-2026", Title: "Verano 2026"},
			want:    NavLink{Label: "Verano 2026", Href: "/temporada/verano-2026", IconName: IconSun, Color: DefaultNavColor},
		},
		{
			name: "explicit styling wins",
			section: HeaderSection{
				Slug: "invierno", Title: "Invierno 2026",
				NavLabel: strPtr("Invierno"), NavIconName: strPtr(IconTag), NavColor: strPtr("#0055FF"),
			},
			want: NavLink{Label: "Invierno", Href: "/temporada/invierno", IconName: IconTag, Color: "#0055FF"},
		},
		{
			name: "unknown icon and empty label fall back",
			section: HeaderSection{
				Slug: "promo", Title: "Promo",
				NavLabel: strPtr(""), NavIconName: strPtr("Rocket"),
			},
			want: NavLink{Label: "Promo", Href: "/temporada/promo", IconName: IconSun, Color: DefaultNavColor},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.section.NavLink(); got != tt.want {
				t.Errorf("NavLink() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveIcons(t *testing.T) {
	if got := ResolveFeatureIcon(IconBus); got != IconBus {
		t.Errorf("ResolveFeatureIcon(Bus) = %q", got)
	}
	if got := ResolveFeatureIcon(IconTag); got != IconStar {
		t.Errorf("ResolveFeatureIcon(Tag) = %q, want Star", got)
	}
	if got := ResolveFeatureIcon(""); got != IconStar {
		t.Errorf("ResolveFeatureIcon(empty) = %q, want Star", got)
	}
	if got := ResolveNavIcon(IconBus); got != IconSun {
		t.Errorf("ResolveNavIcon(Bus) = %q, want Sun", got)
	}
	if got := ResolveNavIcon(IconTag); got != IconTag {
		t.Errorf("ResolveNavIcon(Tag) = %q", got)
	}
}

func TestIsUploadBucket(t *testing.T) {
	for _, b := range []string{BucketPackages, BucketSections, BucketDestinations} {
		if !IsUploadBucket(b) {
			t.Errorf("IsUploadBucket(%q) = false", b)
		}
	}
	if IsUploadBucket("avatars") {
		t.Error("IsUploadBucket(avatars) = true")
	}
}
