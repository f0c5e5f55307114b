package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/hupe1980/minloc"
	"github.com/hupe1980/minloc/bench"
	"github.com/hupe1980/minloc/point"
	"github.com/hupe1980/minloc/pointfile"
	"github.com/hupe1980/minloc/testutil"
)

var (
	numPoints   int
	nrepeat     = flag.Int("nrepeat", 10, "number of test invocations")
	workers     = flag.Int("workers", 0, "pool workers (0 = one per CPU)")
	concurrency = flag.Int("concurrency", 1, "number of concurrent benchmark workers")
	seed        = flag.Int64("seed", 90391, "RNG seed for point generation")
	loadPath    = flag.String("load", "", "load points from a point file instead of generating")
	savePath    = flag.String("save", "", "save generated points to a point file")
	compression = flag.String("compression", "zstd", "point file compression: none, lz4 or zstd")
	logLevel    = flag.String("log-level", "info", "log level: debug, info, warn or error")
)

func init() {
	flag.IntVar(&numPoints, "num_points", 100000, "number of points")
	flag.IntVar(&numPoints, "p", 100000, "shorthand for -num_points")
}

func main() {
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		log.Fatalf("invalid log level %q: %v", *logLevel, err)
	}
	logger := minloc.NewTextLogger(level)

	ctx := context.Background()

	rng := testutil.NewRNG(*seed)

	var store *point.Store
	if *loadPath != "" {
		var err error
		store, err = pointfile.Load(*loadPath)
		if err != nil {
			log.Fatalf("failed to load points: %v", err)
		}
		logger.InfoContext(ctx, "points loaded",
			"filename", *loadPath,
			"num_points", store.Size(),
		)
	} else {
		store = point.NewStore(rng.GridPoints(numPoints))
	}

	// The query is drawn after the points so a fixed seed reproduces the
	// full scenario.
	query := rng.GridPoint()

	if *savePath != "" {
		codec, err := pointfile.ParseCodec(*compression)
		if err != nil {
			log.Fatalf("invalid compression: %v", err)
		}
		if err := pointfile.Save(ctx, *savePath, store, func(o *pointfile.Options) {
			o.Codec = codec
		}); err != nil {
			log.Fatalf("failed to save points: %v", err)
		}
		logger.LogSnapshot(ctx, *savePath, store.Size(), nil)
	}

	reducer := minloc.New(
		minloc.WithWorkers(*workers),
		minloc.WithLogger(logger),
	)
	defer reducer.Close()

	report, err := bench.Run(ctx, reducer, store, query, func(o *bench.Options) {
		o.Repeats = *nrepeat
		o.Concurrency = *concurrency
		o.Logger = logger
	})
	if err != nil {
		log.Fatalf("benchmark failed: %v", err)
	}

	if report.Result.Found {
		fmt.Printf("Min indx: %d with dist2 %f\n", report.Result.Index, report.Result.DistanceSquared)
	} else {
		fmt.Println("No points to scan")
	}
	fmt.Print(report.String())
}
