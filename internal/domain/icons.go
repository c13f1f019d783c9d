package domain

// Icon keys understood by the site. Unknown keys fall back to a default.
const (
	IconSun      = "Sun"
	IconUmbrella = "Umbrella"
	IconWaves    = "Waves"
	IconSparkles = "Sparkles"
	IconPalmtree = "Palmtree"
	IconPlane    = "Plane"
	IconHotel    = "Hotel"
	IconMapPin   = "MapPin"
	IconCamera   = "Camera"
	IconHeart    = "Heart"
	IconStar     = "Star"
	IconGift     = "Gift"
	IconCalendar = "Calendar"
	IconClock    = "Clock"
	IconUsers    = "Users"
	IconCheck    = "Check"
	IconBus      = "Bus"
	IconTag      = "Tag"

	DefaultFeatureIcon = IconStar
	DefaultNavIcon     = IconSun
	DefaultNavColor    = "#FE4F00"
)

var featureIcons = map[string]struct{}{
	IconSun: {}, IconUmbrella: {}, IconWaves: {}, IconSparkles: {}, IconPalmtree: {},
	IconPlane: {}, IconHotel: {}, IconMapPin: {}, IconCamera: {}, IconHeart: {},
	IconStar: {}, IconGift: {}, IconCalendar: {}, IconClock: {}, IconUsers: {},
	IconCheck: {}, IconBus: {},
}

var navIcons = map[string]struct{}{
	IconSun: {}, IconUmbrella: {}, IconWaves: {}, IconSparkles: {}, IconPalmtree: {},
	IconPlane: {}, IconHotel: {}, IconMapPin: {}, IconCamera: {}, IconHeart: {},
	IconStar: {}, IconGift: {}, IconCalendar: {}, IconClock: {}, IconUsers: {},
	IconCheck: {}, IconTag: {},
}

// ResolveFeatureIcon returns name if it is a known feature icon, Star otherwise
func ResolveFeatureIcon(name string) string {
	if _, ok := featureIcons[name]; ok {
		return name
	}
	return DefaultFeatureIcon
}

// ResolveNavIcon returns name if it is a known nav icon, Sun otherwise
func ResolveNavIcon(name string) string {
	if _, ok := navIcons[name]; ok {
		return name
	}
	return DefaultNavIcon
}
