package domain

import (
	"fmt"
	"time"
)

// DateLayout is the timestamp format used by both source tables,
// e.g. "20170101T000000Z".
const DateLayout = "20060102T150405Z"

// Metric identifies which measurement a ToneVolumeRow carries.
type Metric string

const (
	MetricTone   Metric = "tone"
	MetricVolume Metric = "volume"
)

// ParseMetric validates a raw metric string from a source file.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricTone, MetricVolume:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("unknown metric %q", s)
	}
}

// ToneVolumeRow is one observation from the long-form tone & volume table:
// one row per (date, outlet, topic, metric).
type ToneVolumeRow struct {
	Date   time.Time `json:"date"`
	Year   int       `json:"year"`
	Outlet string    `json:"outlet"`
	Topic  string    `json:"topic"`
	Metric Metric    `json:"metric"`
	Value  float64   `json:"value"`
}

// TopicShareRow is one observation from the topic-share table. TopicShare is
// the fraction of the outlet's coverage on that day devoted to the topic;
// it is NaN when the source field was empty (total volume was zero upstream).
type TopicShareRow struct {
	Date       time.Time `json:"date"`
	Year       int       `json:"year"`
	Outlet     string    `json:"outlet"`
	Topic      string    `json:"topic"`
	Value      float64   `json:"value"`
	TopicShare float64   `json:"topic_share"`
}

// Outlets is the canonical outlet enumeration. Order matters: it is the
// tie-break order when two outlets share a min/max mean tone in a cell.
var Outlets = []string{
	"NYTimes",
	"FoxNews",
	"CNN",
	"WashingtonPost",
	"NBCNews",
	"Politico",
	"WSJ",
}

// Topics is the canonical topic enumeration.
var Topics = []string{
	"Elections",
	"Government",
	"Immigration",
	"ForeignPolicy",
	"Economy",
	"Political Figures",
}

// SmoothingWindows is the discrete set of trailing-average window sizes
// (in days) the dashboard exposes.
var SmoothingWindows = []int{1, 7, 14, 30, 60, 90}

// ValidSmoothingWindow reports whether w is one of the allowed window sizes.
func ValidSmoothingWindow(w int) bool {
	for _, v := range SmoothingWindows {
		if v == w {
			return true
		}
	}
	return false
}

// Tone bounds applied during cleaning. Values outside are clamped, not
// dropped: extreme readings come from very low article counts and are
// presumed valid but noisy.
const (
	ToneMin = -10.0
	ToneMax = 10.0
)
