package osmprofile

// genericHighwaySpeeds is a broad nominal speed table covering the common
// `highway` values, shared as the base table for the generic Highway
// profile and specialised by the concrete mode profiles below.
var genericHighwaySpeeds = map[string]float64{
	"motorway":       110,
	"motorway_link":  60,
	"trunk":          100,
	"trunk_link":     50,
	"primary":        80,
	"primary_link":   40,
	"secondary":      60,
	"secondary_link": 35,
	"tertiary":       50,
	"tertiary_link":  30,
	"unclassified":   40,
	"residential":    30,
	"living_street":  15,
	"service":        15,
	"track":          20,
	"road":           30,
}

// Highway matches on the `highway` tag and honours the generic access-tag
// hierarchy under the "vehicle" mode key.
type Highway struct{}

var _ Profile = Highway{}

func (Highway) WayPenalty(tags map[string]string) float64 {
	v, ok := tags["highway"]
	if !ok {
		return NoPenalty
	}
	p, ok := penaltyFromSpeeds(v, genericHighwaySpeeds)
	if !ok {
		return NoPenalty
	}

	return p
}

func (Highway) WayDirection(tags map[string]string) Direction {
	return directionFromTags(tags, "")
}

func (Highway) IsAccessAllowed(tags map[string]string) bool {
	return accessAllowed(tags, "vehicle", true)
}

func (Highway) IsTurnRestriction(relationTags map[string]string) RestrictionClass {
	return turnRestrictionClass(relationTags, "vehicle")
}

// NonMotorroadHighway is Highway with an additional check: ways tagged
// `motorroad=yes` are rejected outright, even though they would otherwise
// match a `highway` value.
type NonMotorroadHighway struct{}

var _ Profile = NonMotorroadHighway{}

func (NonMotorroadHighway) WayPenalty(tags map[string]string) float64 {
	if tags["motorroad"] == "yes" {
		return NoPenalty
	}

	return Highway{}.WayPenalty(tags)
}

func (NonMotorroadHighway) WayDirection(tags map[string]string) Direction {
	return Highway{}.WayDirection(tags)
}

func (NonMotorroadHighway) IsAccessAllowed(tags map[string]string) bool {
	return Highway{}.IsAccessAllowed(tags)
}

func (NonMotorroadHighway) IsTurnRestriction(relationTags map[string]string) RestrictionClass {
	return Highway{}.IsTurnRestriction(relationTags)
}
