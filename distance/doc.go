// Package distance provides the three pure distance functions the rest of
// osmroute builds on: Haversine (great-circle metres, used for edge cost
// and as the A* heuristic), Euclidean and Taxicab (degree-space, used only
// for ordering/pruning, never as a cost).
//
// All three take a pair of Positions and return a non-negative float64.
// None of them allocate or perform I/O.
package distance
