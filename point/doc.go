// Package point provides the Point value type and the immutable Store the
// reduction scans. A Store is populated once at construction and read-only
// thereafter, so any number of workers may read it concurrently without
// synchronization.
package point
