// Package pointfile persists point stores as checksummed binary snapshots
// with selectable compression (none, LZ4, zstd), so generated datasets can
// be reused across benchmark runs.
package pointfile
