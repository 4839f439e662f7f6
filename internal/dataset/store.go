package dataset

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"medialens/pkg/contracts/domain"
)

// Store holds the cleaned tables for the lifetime of the process. It is
// built once at startup and treated as read-only afterwards: accessors hand
// out the retained slices, and every derived view in the analytics package
// works on fresh copies. Callers must not modify the returned slices.
type Store struct {
	snapshotID string
	loadedAt   time.Time

	tone       []domain.ToneVolumeRow
	volume     []domain.ToneVolumeRow
	topicShare []domain.TopicShareRow

	outlets []string
	topics  []string
	years   []int
}

// NewStore builds a Store from already-cleaned tables, splitting the
// long-form table into its tone and volume views and recording the observed
// outlet, topic and year sets.
func NewStore(toneVolume []domain.ToneVolumeRow, topicShare []domain.TopicShareRow) *Store {
	s := &Store{
		snapshotID: uuid.New().String(),
		loadedAt:   time.Now().UTC(),
		topicShare: topicShare,
	}

	outlets := make(map[string]struct{})
	topics := make(map[string]struct{})
	years := make(map[int]struct{})

	for _, r := range toneVolume {
		switch r.Metric {
		case domain.MetricTone:
			s.tone = append(s.tone, r)
		case domain.MetricVolume:
			s.volume = append(s.volume, r)
		}
		outlets[r.Outlet] = struct{}{}
		topics[r.Topic] = struct{}{}
		years[r.Year] = struct{}{}
	}

	s.outlets = sortedKeys(outlets)
	s.topics = sortedKeys(topics)
	for y := range years {
		s.years = append(s.years, y)
	}
	sort.Ints(s.years)

	return s
}

// SnapshotID identifies this load of the source files.
func (s *Store) SnapshotID() string { return s.snapshotID }

// LoadedAt reports when the store was built.
func (s *Store) LoadedAt() time.Time { return s.loadedAt }

// Tone returns the cleaned tone rows. Read-only.
func (s *Store) Tone() []domain.ToneVolumeRow { return s.tone }

// Volume returns the cleaned volume rows. Read-only.
func (s *Store) Volume() []domain.ToneVolumeRow { return s.volume }

// TopicShare returns the cleaned topic-share rows. Read-only.
func (s *Store) TopicShare() []domain.TopicShareRow { return s.topicShare }

// Outlets returns the outlets observed in the cleaned data, sorted.
func (s *Store) Outlets() []string { return s.outlets }

// Topics returns the topics observed in the cleaned data, sorted.
func (s *Store) Topics() []string { return s.topics }

// Years returns the years observed in the cleaned data, ascending.
func (s *Store) Years() []int { return s.years }

// YearBounds returns the first and last observed years. Zero values when the
// store is empty.
func (s *Store) YearBounds() (int, int) {
	if len(s.years) == 0 {
		return 0, 0
	}
	return s.years[0], s.years[len(s.years)-1]
}

// Counts reports the cleaned row counts per table.
func (s *Store) Counts() (tone, volume, share int) {
	return len(s.tone), len(s.volume), len(s.topicShare)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
