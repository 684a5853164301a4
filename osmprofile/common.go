package osmprofile

import "strings"

// accessAllowed evaluates the OSM access-tag hierarchy for a single
// transport mode: modeKey (e.g. "motorcar", "bicycle", "foot") takes
// precedence over the generic "access" tag. def is returned when neither
// tag is present.
func accessAllowed(tags map[string]string, modeKey string, def bool) bool {
	if v, ok := tags[modeKey]; ok {
		if allowed, known := accessValue(v); known {
			return allowed
		}
	}
	if v, ok := tags["access"]; ok {
		if allowed, known := accessValue(v); known {
			return allowed
		}
	}

	return def
}

func accessValue(v string) (allowed bool, known bool) {
	switch v {
	case "yes", "designated", "permissive", "destination":
		return true, true
	case "no", "private", "agricultural", "forestry":
		return false, true
	default:
		return false, false
	}
}

// turnRestrictionClass classifies relationTags as a turn restriction for
// the transport mode modeKey: it reads type=restriction (or
// type=restriction:<mode>), the matching restriction value tag, and the
// except tag.
func turnRestrictionClass(relationTags map[string]string, modeKey string) RestrictionClass {
	typ, ok := relationTags["type"]
	if !ok {
		return RestrictionIrrelevant
	}

	var valueKey string
	switch {
	case typ == "restriction":
		valueKey = "restriction"
	case typ == "restriction:"+modeKey:
		valueKey = "restriction:" + modeKey
	default:
		return RestrictionIrrelevant
	}

	value, ok := relationTags[valueKey]
	if !ok {
		return RestrictionIrrelevant
	}

	if isExempt(relationTags, modeKey) {
		return RestrictionExempt
	}

	switch {
	case strings.HasPrefix(value, "no_"):
		return RestrictionProhibitory
	case strings.HasPrefix(value, "only_"):
		return RestrictionMandatory
	default:
		return RestrictionIrrelevant
	}
}

// isExempt reports whether modeKey appears in relationTags's semicolon-
// separated "except" tag. "except" is the OSM tag's actual name; the
// RestrictionExempt class it produces is named for what it means, not for
// the tag key.
func isExempt(relationTags map[string]string, modeKey string) bool {
	except, ok := relationTags["except"]
	if !ok {
		return false
	}
	for _, mode := range strings.Split(except, ";") {
		if strings.TrimSpace(mode) == modeKey {
			return true
		}
	}

	return false
}
