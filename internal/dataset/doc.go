// Package dataset talks to the chart data source.
//
// Every chart endpoint answers GET requests with a JSON payload of the form
//
//	{"chart_data": ..., "interactive_data": {...}, "error": null}
//
// where interactive_data is the filter schema for the chart and the current
// filter selection travels as repeated query parameters. [Client] performs
// single fetches, [Loader] supersedes in-flight fetches for one chart, and
// [ParseSeries] turns chart_data into label/value points for rendering.
package dataset
