package analytics

import (
	"medialens/pkg/contracts/domain"
)

// Filter restricts a table to an inclusive year range and membership in the
// selected outlet and topic sets. Empty selections yield empty results, not
// errors: preventing nonsensical selections is the presentation layer's
// concern, not the filter's.
type Filter struct {
	YearFrom int
	YearTo   int
	Outlets  []string
	Topics   []string
}

func (f Filter) outletSet() map[string]struct{} { return toSet(f.Outlets) }
func (f Filter) topicSet() map[string]struct{}  { return toSet(f.Topics) }

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}

// ToneVolume returns the rows of a tone/volume table matching the filter.
func (f Filter) ToneVolume(rows []domain.ToneVolumeRow) []domain.ToneVolumeRow {
	outlets, topics := f.outletSet(), f.topicSet()
	out := make([]domain.ToneVolumeRow, 0, len(rows))
	for _, r := range rows {
		if f.matches(r.Year, r.Outlet, r.Topic, outlets, topics) {
			out = append(out, r)
		}
	}
	return out
}

// TopicShare returns the rows of a topic-share table matching the filter.
func (f Filter) TopicShare(rows []domain.TopicShareRow) []domain.TopicShareRow {
	outlets, topics := f.outletSet(), f.topicSet()
	out := make([]domain.TopicShareRow, 0, len(rows))
	for _, r := range rows {
		if f.matches(r.Year, r.Outlet, r.Topic, outlets, topics) {
			out = append(out, r)
		}
	}
	return out
}

func (f Filter) matches(year int, outlet, topic string, outlets, topics map[string]struct{}) bool {
	if year < f.YearFrom || year > f.YearTo {
		return false
	}
	if _, ok := outlets[outlet]; !ok {
		return false
	}
	if _, ok := topics[topic]; !ok {
		return false
	}
	return true
}
