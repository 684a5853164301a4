package osmprofile

// busSpeeds is carSpeeds plus the dedicated `highway=busway`/service lanes
// buses may additionally use.
var busSpeeds = func() map[string]float64 {
	m := subtable(carSpeeds, "motorway", "motorway_link", "trunk", "trunk_link",
		"primary", "primary_link", "secondary", "secondary_link", "tertiary",
		"tertiary_link", "unclassified", "residential", "living_street",
		"service", "road")
	m["busway"] = 30

	return m
}()

// Bus is the highway-based profile for buses: like Car, but additionally
// traverses `highway=busway` and consults `bus`/`psv` access tags ahead of
// the generic hierarchy.
type Bus struct{}

var _ Profile = Bus{}

func (Bus) WayPenalty(tags map[string]string) float64 {
	v, ok := tags["highway"]
	if !ok {
		return NoPenalty
	}
	p, ok := penaltyFromSpeeds(v, busSpeeds)
	if !ok {
		return NoPenalty
	}

	return p
}

func (Bus) WayDirection(tags map[string]string) Direction {
	return directionFromTags(tags, "oneway:bus")
}

func (Bus) IsAccessAllowed(tags map[string]string) bool {
	if v, ok := tags["bus"]; ok {
		if allowed, known := accessValue(v); known {
			return allowed
		}
	}
	if v, ok := tags["psv"]; ok {
		if allowed, known := accessValue(v); known {
			return allowed
		}
	}

	return accessAllowed(tags, "motor_vehicle", true)
}

func (Bus) IsTurnRestriction(relationTags map[string]string) RestrictionClass {
	return turnRestrictionClass(relationTags, "bus")
}
