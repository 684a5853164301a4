package osmprofile

// Skeleton is a profile where every way is traversable at penalty 1 and no
// access tag is ever consulted — intended for experimentation and tests
// that want pure graph topology without transport-mode semantics.
type Skeleton struct{}

var _ Profile = Skeleton{}

func (Skeleton) WayPenalty(map[string]string) float64 { return 1 }

func (Skeleton) WayDirection(tags map[string]string) Direction {
	return directionFromTags(tags, "")
}

func (Skeleton) IsAccessAllowed(map[string]string) bool { return true }

func (Skeleton) IsTurnRestriction(relationTags map[string]string) RestrictionClass {
	return turnRestrictionClass(relationTags, "vehicle")
}
