package osmprofile

// carSpeeds excludes highway values a private car may not legally use
// (footway, path, pedestrian, steps, cycleway) from genericHighwaySpeeds.
var carSpeeds = subtable(genericHighwaySpeeds, "motorway", "motorway_link", "trunk",
	"trunk_link", "primary", "primary_link", "secondary", "secondary_link",
	"tertiary", "tertiary_link", "unclassified", "residential",
	"living_street", "service", "road")

// Car is the highway-based profile for private motor vehicles.
type Car struct{}

var _ Profile = Car{}

func (Car) WayPenalty(tags map[string]string) float64 {
	v, ok := tags["highway"]
	if !ok {
		return NoPenalty
	}
	p, ok := penaltyFromSpeeds(v, carSpeeds)
	if !ok {
		return NoPenalty
	}

	return p
}

func (Car) WayDirection(tags map[string]string) Direction {
	return directionFromTags(tags, "oneway:motorcar")
}

func (Car) IsAccessAllowed(tags map[string]string) bool {
	return accessAllowed(tags, "motorcar", true)
}

func (Car) IsTurnRestriction(relationTags map[string]string) RestrictionClass {
	return turnRestrictionClass(relationTags, "motorcar")
}

// subtable returns the subset of src whose keys are in keep.
func subtable(src map[string]float64, keep ...string) map[string]float64 {
	out := make(map[string]float64, len(keep))
	for _, k := range keep {
		if v, ok := src[k]; ok {
			out[k] = v
		}
	}

	return out
}
