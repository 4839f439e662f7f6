package domain

import "time"

// TopicYearCell is one cell of the year x topic heatmap: tone statistics
// across the selected outlets plus the per-cell outlet extremes and the
// year-over-year change relative to the previous selected year.
type TopicYearCell struct {
	Year    int     `json:"year"`
	Topic   string  `json:"topic"`
	AvgTone float64 `json:"avg_tone"`
	StdTone float64 `json:"std_tone"`
	Days    int     `json:"n_days"`

	MostNegativeOutlet string  `json:"most_negative_outlet"`
	MostNegativeTone   float64 `json:"most_negative_val"`
	MostPositiveOutlet string  `json:"most_positive_outlet"`
	MostPositiveTone   float64 `json:"most_positive_val"`

	YoYChange float64 `json:"yoy_change"`
	YoYLabel  string  `json:"yoy_label"`
}

// OutletYearTone is the per-outlet breakdown behind a heatmap cell and the
// basis of the year-over-year slope chart.
type OutletYearTone struct {
	Year    int     `json:"year"`
	Outlet  string  `json:"outlet"`
	AvgTone float64 `json:"avg_tone"`
}

// OutletYearRank extends OutletYearTone with a competition rank within the
// year: rank 1 is the most negative outlet, ties share the minimum rank and
// the next distinct value skips accordingly.
type OutletYearRank struct {
	Year    int     `json:"year"`
	Outlet  string  `json:"outlet"`
	AvgTone float64 `json:"avg_tone"`
	Rank    int     `json:"rank"`
}

// SeriesPoint is one point of a (possibly smoothed) time series keyed by
// outlet, tone averaged across the selected topics.
type SeriesPoint struct {
	Date   time.Time `json:"date"`
	Outlet string    `json:"outlet"`
	Value  float64   `json:"value"`
}

// MonthlyShare is the mean topic share for one outlet in one calendar month,
// the month truncated to its first day.
type MonthlyShare struct {
	Month time.Time `json:"month"`
	Topic string    `json:"topic"`
	Share float64   `json:"topic_share"`
}

// OutletDeviation compares one outlet's mean tone on a topic against the
// mean across all selected outlets for that topic. Negative deviation means
// the outlet is more negative than the topic average.
type OutletDeviation struct {
	Outlet    string  `json:"outlet"`
	Topic     string  `json:"topic"`
	MeanTone  float64 `json:"mean_tone"`
	TopicMean float64 `json:"topic_mean"`
	Deviation float64 `json:"deviation"`
	Label     string  `json:"label"`
}

// Deviation labels used in tooltips.
const (
	LabelMoreNegative = "more negative"
	LabelMorePositive = "more positive"
)

// DeepDive is the per-topic comparison payload: smoothed tone series per
// outlet plus mean coverage volume per (year, outlet).
type DeepDive struct {
	Topic        string           `json:"topic"`
	ToneSeries   []SeriesPoint    `json:"tone_series"`
	VolumeByYear []OutletYearTone `json:"volume_by_year"`
}

// SummaryStats carries the hero metrics shown above the charts.
type SummaryStats struct {
	Outlets    int `json:"outlets"`
	Topics     int `json:"topics"`
	Years      int `json:"years"`
	ToneRows   int `json:"tone_rows"`
	VolumeRows int `json:"volume_rows"`
	ShareRows  int `json:"share_rows"`
	FirstYear  int `json:"first_year"`
	LastYear   int `json:"last_year"`
}
