package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"medialens/pkg/contracts/domain"
)

// welford accumulates mean and variance in one pass.
type welford struct {
	n    int
	mean float64
	m2   float64
}

func (w *welford) add(v float64) {
	w.n++
	delta := v - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (v - w.mean)
}

// std is the sample standard deviation. A single-observation group resolves
// to 0, never NaN: these values feed tooltips that must always show a number.
func (w *welford) std() float64 {
	if w.n < 2 {
		return 0
	}
	return math.Sqrt(w.m2 / float64(w.n-1))
}

type yearTopicKey struct {
	year  int
	topic string
}

type yearOutletKey struct {
	year   int
	outlet string
}

// TopicYearStats computes the heatmap table: per (year, topic) mean tone,
// sample standard deviation, observation count, the most negative and most
// positive outlet within the cell, and the year-over-year change per topic
// (the first year in range has a delta of exactly 0).
func TopicYearStats(rows []domain.ToneVolumeRow) []domain.TopicYearCell {
	cells := make(map[yearTopicKey]*welford)
	perOutlet := make(map[yearTopicKey]map[string]*welford)

	for _, r := range rows {
		k := yearTopicKey{r.Year, r.Topic}
		if cells[k] == nil {
			cells[k] = &welford{}
			perOutlet[k] = make(map[string]*welford)
		}
		cells[k].add(r.Value)
		if perOutlet[k][r.Outlet] == nil {
			perOutlet[k][r.Outlet] = &welford{}
		}
		perOutlet[k][r.Outlet].add(r.Value)
	}

	out := make([]domain.TopicYearCell, 0, len(cells))
	for k, w := range cells {
		cell := domain.TopicYearCell{
			Year:    k.year,
			Topic:   k.topic,
			AvgTone: w.mean,
			StdTone: w.std(),
			Days:    w.n,
		}
		fillOutletExtremes(&cell, perOutlet[k])
		out = append(out, cell)
	}

	// Sort by topic then year so the year-over-year fold below sees each
	// topic's years in order.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Topic != out[j].Topic {
			return topicLess(out[i].Topic, out[j].Topic)
		}
		return out[i].Year < out[j].Year
	})

	for i := range out {
		if i > 0 && out[i-1].Topic == out[i].Topic {
			out[i].YoYChange = out[i].AvgTone - out[i-1].AvgTone
		}
		out[i].YoYLabel = yoyLabel(out[i].YoYChange)
	}

	return out
}

// fillOutletExtremes records which outlet carries the minimum and maximum
// mean tone within one cell. Outlets are visited in canonical enumeration
// order so ties go to the first-encountered outlet.
func fillOutletExtremes(cell *domain.TopicYearCell, outlets map[string]*welford) {
	first := true
	for _, outlet := range orderedOutlets(outlets) {
		mean := outlets[outlet].mean
		if first {
			cell.MostNegativeOutlet, cell.MostNegativeTone = outlet, mean
			cell.MostPositiveOutlet, cell.MostPositiveTone = outlet, mean
			first = false
			continue
		}
		if mean < cell.MostNegativeTone {
			cell.MostNegativeOutlet, cell.MostNegativeTone = outlet, mean
		}
		if mean > cell.MostPositiveTone {
			cell.MostPositiveOutlet, cell.MostPositiveTone = outlet, mean
		}
	}
}

func yoyLabel(change float64) string {
	if change > 0 {
		return fmt.Sprintf("+%.2f", change)
	}
	return fmt.Sprintf("%.2f", change)
}

// YearlyOutletTone computes the mean value per (year, outlet), sorted by
// year then canonical outlet order. It serves both the tone slope chart and
// the deep-dive volume bars.
func YearlyOutletTone(rows []domain.ToneVolumeRow) []domain.OutletYearTone {
	acc := make(map[yearOutletKey]*welford)
	for _, r := range rows {
		k := yearOutletKey{r.Year, r.Outlet}
		if acc[k] == nil {
			acc[k] = &welford{}
		}
		acc[k].add(r.Value)
	}

	out := make([]domain.OutletYearTone, 0, len(acc))
	for k, w := range acc {
		out = append(out, domain.OutletYearTone{Year: k.year, Outlet: k.outlet, AvgTone: w.mean})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return outletLess(out[i].Outlet, out[j].Outlet)
	})
	return out
}

// RankOutlets assigns competition ranks within each year: outlets sorted by
// mean tone ascending, rank 1 for the most negative, tied values sharing the
// minimum rank and the next distinct value skipping accordingly.
func RankOutlets(cells []domain.OutletYearTone) []domain.OutletYearRank {
	byYear := make(map[int][]domain.OutletYearTone)
	for _, c := range cells {
		byYear[c.Year] = append(byYear[c.Year], c)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]domain.OutletYearRank, 0, len(cells))
	for _, year := range years {
		group := byYear[year]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].AvgTone != group[j].AvgTone {
				return group[i].AvgTone < group[j].AvgTone
			}
			return outletLess(group[i].Outlet, group[j].Outlet)
		})

		rank := 0
		for i, c := range group {
			if i == 0 || c.AvgTone != group[i-1].AvgTone {
				rank = i + 1
			}
			out = append(out, domain.OutletYearRank{
				Year:    c.Year,
				Outlet:  c.Outlet,
				AvgTone: c.AvgTone,
				Rank:    rank,
			})
		}
	}
	return out
}

type dateOutletKey struct {
	date   time.Time
	outlet string
}

// ToneSeriesByOutlet averages values per (date, outlet) across the selected
// topics, sorted by date then outlet. Feed it smoothed rows for the trend
// charts.
func ToneSeriesByOutlet(rows []domain.ToneVolumeRow) []domain.SeriesPoint {
	acc := make(map[dateOutletKey]*welford)
	for _, r := range rows {
		k := dateOutletKey{r.Date, r.Outlet}
		if acc[k] == nil {
			acc[k] = &welford{}
		}
		acc[k].add(r.Value)
	}

	out := make([]domain.SeriesPoint, 0, len(acc))
	for k, w := range acc {
		out = append(out, domain.SeriesPoint{Date: k.date, Outlet: k.outlet, Value: w.mean})
	}
	sortSeries(out)
	return out
}

// MonthlyToneByOutlet rolls the series up to calendar months: dates truncated
// to the first of the month, values averaged per (month, outlet).
func MonthlyToneByOutlet(rows []domain.ToneVolumeRow) []domain.SeriesPoint {
	acc := make(map[dateOutletKey]*welford)
	for _, r := range rows {
		k := dateOutletKey{monthOf(r.Date), r.Outlet}
		if acc[k] == nil {
			acc[k] = &welford{}
		}
		acc[k].add(r.Value)
	}

	out := make([]domain.SeriesPoint, 0, len(acc))
	for k, w := range acc {
		out = append(out, domain.SeriesPoint{Date: k.date, Outlet: k.outlet, Value: w.mean})
	}
	sortSeries(out)
	return out
}

func sortSeries(points []domain.SeriesPoint) {
	sort.Slice(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return outletLess(points[i].Outlet, points[j].Outlet)
	})
}

type monthTopicKey struct {
	month time.Time
	topic string
}

// MonthlyTopicShare computes one outlet's mean topic share per calendar
// month, the basis of the stacked-area coverage chart.
func MonthlyTopicShare(rows []domain.TopicShareRow, outlet string) []domain.MonthlyShare {
	acc := make(map[monthTopicKey]*welford)
	for _, r := range rows {
		if r.Outlet != outlet {
			continue
		}
		k := monthTopicKey{monthOf(r.Date), r.Topic}
		if acc[k] == nil {
			acc[k] = &welford{}
		}
		acc[k].add(r.TopicShare)
	}

	out := make([]domain.MonthlyShare, 0, len(acc))
	for k, w := range acc {
		out = append(out, domain.MonthlyShare{Month: k.month, Topic: k.topic, Share: w.mean})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Month.Equal(out[j].Month) {
			return out[i].Month.Before(out[j].Month)
		}
		return topicLess(out[i].Topic, out[j].Topic)
	})
	return out
}

type outletTopicKey struct {
	outlet string
	topic  string
}

// OutletDeviations compares each outlet's mean tone per topic against the
// overall mean across all selected outlets for that topic. A negative
// deviation means the outlet is more negative than the topic average.
func OutletDeviations(rows []domain.ToneVolumeRow) []domain.OutletDeviation {
	perOutlet := make(map[outletTopicKey]*welford)
	perTopic := make(map[string]*welford)

	for _, r := range rows {
		k := outletTopicKey{r.Outlet, r.Topic}
		if perOutlet[k] == nil {
			perOutlet[k] = &welford{}
		}
		perOutlet[k].add(r.Value)
		if perTopic[r.Topic] == nil {
			perTopic[r.Topic] = &welford{}
		}
		perTopic[r.Topic].add(r.Value)
	}

	out := make([]domain.OutletDeviation, 0, len(perOutlet))
	for k, w := range perOutlet {
		topicMean := perTopic[k.topic].mean
		dev := w.mean - topicMean
		label := domain.LabelMorePositive
		if dev < 0 {
			label = domain.LabelMoreNegative
		}
		out = append(out, domain.OutletDeviation{
			Outlet:    k.outlet,
			Topic:     k.topic,
			MeanTone:  w.mean,
			TopicMean: topicMean,
			Deviation: dev,
			Label:     label,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Topic != out[j].Topic {
			return topicLess(out[i].Topic, out[j].Topic)
		}
		return outletLess(out[i].Outlet, out[j].Outlet)
	})
	return out
}

// ForTopic restricts rows to a single topic.
func ForTopic(rows []domain.ToneVolumeRow, topic string) []domain.ToneVolumeRow {
	out := make([]domain.ToneVolumeRow, 0, len(rows))
	for _, r := range rows {
		if r.Topic == topic {
			out = append(out, r)
		}
	}
	return out
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// orderedOutlets returns the keys of the per-outlet map in canonical
// enumeration order, with any outlet outside the enumeration appended in
// lexical order.
func orderedOutlets(m map[string]*welford) []string {
	out := make([]string, 0, len(m))
	for _, o := range domain.Outlets {
		if _, ok := m[o]; ok {
			out = append(out, o)
		}
	}
	var extra []string
	for o := range m {
		if outletOrder(o) == len(domain.Outlets) {
			extra = append(extra, o)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func outletOrder(outlet string) int {
	for i, o := range domain.Outlets {
		if o == outlet {
			return i
		}
	}
	return len(domain.Outlets)
}

// outletLess orders outlets by canonical position, falling back to lexical
// order for anything outside the enumeration.
func outletLess(a, b string) bool {
	oa, ob := outletOrder(a), outletOrder(b)
	if oa != ob {
		return oa < ob
	}
	return a < b
}

func topicOrder(topic string) int {
	for i, t := range domain.Topics {
		if t == topic {
			return i
		}
	}
	return len(domain.Topics)
}

// topicLess orders topics by canonical position, falling back to lexical
// order for anything outside the enumeration.
func topicLess(a, b string) bool {
	oa, ob := topicOrder(a), topicOrder(b)
	if oa != ob {
		return oa < ob
	}
	return a < b
}
