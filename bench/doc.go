// Package bench drives repeated reductions over a fixed store to amortize
// timing noise and reports aggregate throughput: total time, time per
// iteration, problem size in MB and achieved bandwidth in GB/s.
package bench
