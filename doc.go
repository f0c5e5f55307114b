// Package minloc implements a parallel minimum-with-index reduction over
// 3-D point sets: given N points and a query point, it finds the index of
// the point with the smallest squared Euclidean distance to the query.
//
// The index range is partitioned among a fixed pool of workers; each worker
// folds its chunk into a private (distance, index) candidate, and partials
// merge through an associative combine rule. The minimum distance is
// deterministic for a given input. When several points tie exactly, which
// of their indices is reported depends on the merge order and may vary
// between runs.
//
// # Quick Start
//
//	store := point.NewStore([]point.Point{{0, 0, 0}, {10, 0, 0}, {3, 4, 0}})
//
//	r := minloc.New()
//	defer r.Close()
//
//	res, err := r.Reduce(context.Background(), store, point.Point{X: 3, Y: 4})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Found {
//	    fmt.Println(res.Index, res.DistanceSquared) // 2 0
//	}
package minloc
