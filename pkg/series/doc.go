//
// Package series generates synthetic point series for time series
// database benchmarks and writes them as CSV.
//
// Quick start:
//
//	// Create random value provider, uniform in [-1, 1]
//	vals := randval.NewRandUniformVal(randval.DefaultConfig())
//
//	// 100 points, one minute apart
//	points, _ := series.Generate(series.DefaultGeneratorConfig(), vals)
//
//	// Header "Timestamp,Value" then one row per point
//	series.WriteFile(logger, "assets/test_data.csv", points)
package series
