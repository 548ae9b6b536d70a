package metrics

import (
	"sort"

	"github.com/montanaflynn/stats"

	"fincore/internal/models"
)

// Benchmark positions a target company's ratio set against a peer group.
//
// Aggregation is per ratio: a peer with an undefined return_on_equity is
// excluded from the ROE aggregate only, not from the whole computation. When
// zero peers define a ratio, that ratio's aggregates and the target's
// relative position are undefined. An empty peer group therefore yields an
// all-undefined result rather than an error.
//
// The result is independent of peer ordering: values are collected and
// sorted before aggregation, so permuting the peer set changes nothing.
func Benchmark(target models.RatioSet, peers []models.RatioSet) models.BenchmarkResult {
	result := models.BenchmarkResult{
		PeerSize: len(peers),
		Ratios:   make(map[models.RatioName]models.RatioBenchmark, len(models.AllRatios)),
	}

	for _, name := range models.AllRatios {
		result.Ratios[name] = benchmarkRatio(target.Get(name), name, peers)
	}
	return result
}

// benchmarkRatio aggregates one ratio across the peers that define it and
// positions the target against the aggregate.
func benchmarkRatio(target models.Ratio, name models.RatioName, peers []models.RatioSet) models.RatioBenchmark {
	var values []float64
	for _, peer := range peers {
		if v, ok := peer.Get(name).Value(); ok {
			values = append(values, v)
		}
	}
	// Sorting makes the aggregation independent of peer-set ordering and is
	// what the median needs anyway.
	sort.Float64s(values)

	bench := models.RatioBenchmark{
		Target:       target,
		PeerCount:    len(values),
		PeerMean:     models.UndefinedRatio(),
		PeerMedian:   models.UndefinedRatio(),
		DeltaVsMean:  models.UndefinedRatio(),
		Percentile:   models.UndefinedRatio(),
		AboveAverage: nil,
	}
	if len(values) == 0 {
		return bench
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return bench
	}
	median, err := stats.Median(values)
	if err != nil {
		return bench
	}
	bench.PeerMean = models.RatioOf(mean)
	bench.PeerMedian = models.RatioOf(median)

	t, ok := target.Value()
	if !ok {
		return bench
	}

	bench.DeltaVsMean = models.RatioOf(t - mean)
	above := t > mean
	bench.AboveAverage = &above

	below := 0
	for _, v := range values {
		if v < t {
			below++
		}
	}
	bench.Percentile = models.RatioOf(100 * float64(below) / float64(len(values)))

	return bench
}
