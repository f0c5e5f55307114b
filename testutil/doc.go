// Package testutil provides seeded point generation and sequential oracles
// for tests and benchmarks.
package testutil
