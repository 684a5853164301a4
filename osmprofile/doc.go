// Package osmprofile implements capability-bundle transport profiles:
// deciding, per OSM way, whether it is traversable, at what penalty, in
// which direction, and whether a given relation expresses a turn
// restriction this profile must obey.
//
// A Profile is consulted by the graph builder (package osmgraph) with each
// way's or relation's full tag set; the builder itself never interprets
// access tags directly.
package osmprofile
