package osmprofile

// bicycleSpeeds covers highway values a bicycle may use, including the
// dedicated cycleway infrastructure tags that Car/Bus never see.
var bicycleSpeeds = map[string]float64{
	"cycleway":      25,
	"residential":   18,
	"living_street": 15,
	"unclassified":  18,
	"tertiary":      20,
	"secondary":     20,
	"primary":       18,
	"service":       15,
	"track":         12,
	"path":          10,
}

// Bicycle is the highway-based profile for bicycles: consults `bicycle`
// access ahead of the generic hierarchy, and honours
// `oneway:bicycle` (commonly `no`, letting cyclists use contraflow lanes
// on otherwise one-way streets) ahead of the plain `oneway` tag.
type Bicycle struct{}

var _ Profile = Bicycle{}

func (Bicycle) WayPenalty(tags map[string]string) float64 {
	v, ok := tags["highway"]
	if !ok {
		return NoPenalty
	}
	p, ok := penaltyFromSpeeds(v, bicycleSpeeds)
	if !ok {
		return NoPenalty
	}

	return p
}

func (Bicycle) WayDirection(tags map[string]string) Direction {
	return directionFromTags(tags, "oneway:bicycle")
}

func (Bicycle) IsAccessAllowed(tags map[string]string) bool {
	return accessAllowed(tags, "bicycle", true)
}

func (Bicycle) IsTurnRestriction(relationTags map[string]string) RestrictionClass {
	return turnRestrictionClass(relationTags, "bicycle")
}
