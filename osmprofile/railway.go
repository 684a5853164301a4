package osmprofile

// railwaySpeeds is a nominal speed table (km/h) for general heavy-rail
// values of the `railway` tag, used only to derive a relative penalty.
var railwaySpeeds = map[string]float64{
	"rail":         120,
	"light_rail":   80,
	"narrow_gauge": 60,
	"monorail":     60,
	"funicular":    30,
}

// Railway matches on the `railway` tag, has no access hierarchy, and
// defaults to bidirectional travel.
type Railway struct{}

var _ Profile = Railway{}

func (Railway) WayPenalty(tags map[string]string) float64 {
	v, ok := tags["railway"]
	if !ok {
		return NoPenalty
	}
	p, ok := penaltyFromSpeeds(v, railwaySpeeds)
	if !ok {
		return NoPenalty
	}

	return p
}

func (Railway) WayDirection(tags map[string]string) Direction {
	return directionFromTags(tags, "")
}

func (Railway) IsAccessAllowed(map[string]string) bool { return true }

func (Railway) IsTurnRestriction(relationTags map[string]string) RestrictionClass {
	return turnRestrictionClass(relationTags, "train")
}

// subwayTramSpeeds is the nominal speed table for SubwayTram's narrower
// `railway` value set.
var subwayTramSpeeds = map[string]float64{
	"subway": 70,
	"tram":   40,
}

// SubwayTram specialises Railway to urban rapid-transit values only.
type SubwayTram struct{}

var _ Profile = SubwayTram{}

func (SubwayTram) WayPenalty(tags map[string]string) float64 {
	v, ok := tags["railway"]
	if !ok {
		return NoPenalty
	}
	p, ok := penaltyFromSpeeds(v, subwayTramSpeeds)
	if !ok {
		return NoPenalty
	}

	return p
}

func (SubwayTram) WayDirection(tags map[string]string) Direction {
	return directionFromTags(tags, "")
}

func (SubwayTram) IsAccessAllowed(map[string]string) bool { return true }

func (SubwayTram) IsTurnRestriction(relationTags map[string]string) RestrictionClass {
	return turnRestrictionClass(relationTags, "train")
}
