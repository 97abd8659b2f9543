//
// Package csvfile writes and reads the comma-separated fixture files.
//
// Every file starts with a header row naming the fields, followed by
// one row per record. Rows end with CRLF, as in RFC 4180.
//
//	// Scoped write: file is closed even if a row fails
//	err := csvfile.WriteFile(logger, "assets/intervals.csv", []string{"start_ts", "end_ts"}, rows)
//
//	// Read it back
//	header, rows, err := csvfile.ReadFile("assets/intervals.csv")
package csvfile
