// Package engine provides the parallel executor for min-with-index
// reductions: a fixed worker pool plus chunked fan-out/fan-in merging of
// partial candidates. The scanned store is shared read-only across workers;
// the only mutated state is each worker's private partial, handed to the
// collector exactly once.
package engine
