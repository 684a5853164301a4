package osmprofile

// footSpeeds covers the highway values a pedestrian may use. All are
// given the same nominal walking speed — terrain, not road class,
// dominates pedestrian travel time — so every traversable value carries
// penalty 1.
var footSpeeds = map[string]float64{
	"footway":       5,
	"path":          5,
	"pedestrian":    5,
	"living_street": 5,
	"residential":   5,
	"steps":         5,
	"track":         5,
	"service":       5,
	"unclassified":  5,
}

// Foot is the highway-based profile for pedestrians: consults `foot`
// access ahead of the generic hierarchy, and treats
// `oneway:foot=no` as overriding any vehicle-oriented `oneway` tag, since
// pedestrians are essentially never bound by one-way restrictions meant
// for vehicle traffic.
type Foot struct{}

var _ Profile = Foot{}

func (Foot) WayPenalty(tags map[string]string) float64 {
	v, ok := tags["highway"]
	if !ok {
		return NoPenalty
	}
	if _, ok := footSpeeds[v]; !ok {
		return NoPenalty
	}

	return 1
}

func (Foot) WayDirection(tags map[string]string) Direction {
	if v, ok := tags["oneway:foot"]; ok {
		if d, ok := onewayValue(v); ok {
			return d
		}
	}
	// Pedestrians are not bound by a plain vehicular `oneway` tag.
	if _, ok := tags["oneway"]; ok && tags["oneway"] != "" {
		return Both
	}

	return directionFromTags(tags, "")
}

func (Foot) IsAccessAllowed(tags map[string]string) bool {
	return accessAllowed(tags, "foot", true)
}

func (Foot) IsTurnRestriction(relationTags map[string]string) RestrictionClass {
	return turnRestrictionClass(relationTags, "foot")
}
