package dashboard

import (
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// RecordSelector is the typeahead combo box over processed holidays. It keeps
// a cached subset of the store's records restricted to those with a non-null
// processed timestamp and exposes a pure text filter over that cache.
//
// Panel visibility is plain UI state independent of the data state: the panel
// opens on input focus or a click on the wrapping control, and closes on any
// click outside the wrapper or when a record is selected.
type RecordSelector struct {
	store *Store

	mu        sync.Mutex
	processed []Holiday
	panelOpen bool
	onSelect  func(Holiday)
}

func NewRecordSelector(store *Store) *RecordSelector {
	s := &RecordSelector{store: store}
	store.Watch(s.Refresh)
	return s
}

// OnSelect registers the callback invoked when the user picks a record.
func (s *RecordSelector) OnSelect(fn func(Holiday)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSelect = fn
}

// Refresh recomputes the cached processed subset from the store. The store
// calls this after every successful refresh, so the selector never presents
// a deleted or stale record past the next re-read.
func (s *RecordSelector) Refresh() {
	var processed []Holiday
	for _, h := range s.store.Records() {
		if h.ProcessedAt != nil {
			processed = append(processed, h)
		}
	}

	s.mu.Lock()
	s.processed = processed
	s.mu.Unlock()
}

// Filter returns the cached records whose date or name contains term, case
// insensitively. An empty term returns the whole cached subset. Matches are
// ordered by fuzzy rank against the name, closest first, with the cache
// order breaking ties. Never touches the network.
func (s *RecordSelector) Filter(term string) []Holiday {
	s.mu.Lock()
	records := append([]Holiday{}, s.processed...)
	s.mu.Unlock()

	if term == "" {
		return records
	}

	needle := strings.ToLower(term)
	var matches []Holiday
	for _, h := range records {
		if strings.Contains(strings.ToLower(h.Date), needle) ||
			strings.Contains(strings.ToLower(h.Name), needle) {
			matches = append(matches, h)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return selectorRank(term, matches[i]) < selectorRank(term, matches[j])
	})
	return matches
}

// Select makes record the active choice: the panel closes and the selection
// callback fires with the record so the caller can set the date filter and
// regenerate.
func (s *RecordSelector) Select(record Holiday) {
	s.mu.Lock()
	s.panelOpen = false
	fn := s.onSelect
	s.mu.Unlock()

	if fn != nil {
		fn(record)
	}
}

// HandleFocus opens the panel when the input gains focus.
func (s *RecordSelector) HandleFocus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelOpen = true
}

// HandleWrapperClick opens the panel on a click anywhere in the wrapping
// control except the input itself, which already opened it on focus. Without
// the exception a click on the input would toggle the panel twice.
func (s *RecordSelector) HandleWrapperClick(targetIsInput bool) {
	if targetIsInput {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelOpen = true
}

// HandleOutsideClick closes the panel on any click outside the wrapper.
func (s *RecordSelector) HandleOutsideClick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelOpen = false
}

// PanelOpen reports the panel's visibility.
func (s *RecordSelector) PanelOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panelOpen
}

// Cached returns the current processed subset.
func (s *RecordSelector) Cached() []Holiday {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Holiday{}, s.processed...)
}

// selectorRank scores a record against the term. A substring match always
// fuzzy-matches too, but guard the -1 case anyway so a non-ranking field
// sorts last rather than first.
func selectorRank(term string, h Holiday) int {
	best := -1
	for _, field := range []string{h.Name, h.Date} {
		if rank := fuzzy.RankMatchNormalizedFold(term, field); rank >= 0 {
			if best < 0 || rank < best {
				best = rank
			}
		}
	}
	if best < 0 {
		return int(^uint(0) >> 1)
	}
	return best
}
