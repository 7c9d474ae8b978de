// Package io provides text and JSON import and export for rows.
//
// # Text Format
//
// One row per line, numbers separated by commas. Whitespace around numbers
// is ignored, as are blank lines and lines starting with '#':
//
//	# drawn 2020-04-25
//	1,2,4
//	2,4,5
//	1,3,5
//
// Numbers within a line may appear in any order; they are sorted when the row
// is built. The missing-rows output written by [WriteRows] uses the same
// format, so outputs can be fed back in as inputs.
//
// # JSON Format
//
// A single array of number arrays:
//
//	[[1,2,4],[2,4,5],[1,3,5]]
//
// # Files
//
// [ReadFile] and [WriteFile] pick the format from the file extension: ".json"
// selects JSON, anything else selects text.
//
// Every row is validated against the row.Config it is read under; errors
// carry the structured codes of the errors package and name the offending
// line (text) or index (JSON).
package io
