// Package intervals generates random query windows for range-query
// benchmarks and writes them as CSV with header "start_ts,end_ts".
package intervals
