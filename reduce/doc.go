// Package reduce implements the min-with-index combine rule and the
// sequential range fold the parallel executor is built from. The combine
// operator is associative and commutative over the distance value, which is
// what allows an arbitrary partition of the index range and an arbitrary
// merge order of partial results.
package reduce
