// Package logging provides the minimal injectable logging seam used across
// osmroute's packages to surface non-fatal warnings (a malformed OSM
// feature, a restriction relation that could not be resolved) without
// hardwiring any particular logging stack onto callers.
package logging
