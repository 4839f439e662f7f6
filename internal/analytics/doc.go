// Package analytics derives the dashboard views from the cleaned tables:
// filtering by year range and outlet/topic selection, trailing-window
// smoothing, and the mean-based group-by aggregations behind each chart.
//
// Every function here is pure: inputs are never mutated and every result is
// a freshly allocated slice. Group transforms (smoothing, ranking) are
// written as explicit partition-sort-fold steps so ordering and tie-break
// rules are visible in the code rather than implied by a library default.
package analytics
