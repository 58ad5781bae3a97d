package dashboard

import (
	"context"
	"log/slog"
	"sync"
)

// AllSubSections is the sentinel option that always heads the sub-section
// list, standing for "no sub-section filter".
const AllSubSections = "All Sub-Sections"

// FilterCascade owns the taxonomy dropdowns and the currently selected
// filters. Sub-section options are always scoped to the selected section;
// changing the section repopulates them and pushes a change notification so
// the report can regenerate without polling.
type FilterCascade struct {
	client *Client

	mu          sync.Mutex
	sections    []string
	categories  []string
	subSections []string
	selection   ReportFilter
	onChange    func(ReportFilter)
}

func NewFilterCascade(client *Client) *FilterCascade {
	return &FilterCascade{
		client:      client,
		sections:    []string{},
		categories:  []string{},
		subSections: []string{AllSubSections},
	}
}

// OnChange registers the callback pushed after every selection change.
func (f *FilterCascade) OnChange(fn func(ReportFilter)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = fn
}

// LoadTaxonomy fetches the section and category sets once. A failed fetch
// degrades to an empty option set instead of failing the page; the dropdowns
// just stay empty.
func (f *FilterCascade) LoadTaxonomy(ctx context.Context) {
	sections, err := f.client.Sections(ctx)
	if err != nil {
		slog.Warn("Taxonomy load failed, sections unavailable", "error", err)
		sections = []string{}
	}
	categories, err := f.client.Categories(ctx)
	if err != nil {
		slog.Warn("Taxonomy load failed, categories unavailable", "error", err)
		categories = []string{}
	}

	f.mu.Lock()
	f.sections = sections
	f.categories = categories
	f.mu.Unlock()
}

// RefreshSubSections replaces the sub-section option set with the sentinel
// followed by the server's list for the given section, in returned order.
// Repeated calls with the same section converge to the same set.
func (f *FilterCascade) RefreshSubSections(ctx context.Context, section string) error {
	subSections, err := f.client.SubSections(ctx, section)
	if err != nil {
		return err
	}

	options := make([]string, 0, len(subSections)+1)
	options = append(options, AllSubSections)
	options = append(options, subSections...)

	f.mu.Lock()
	f.subSections = options
	f.mu.Unlock()
	return nil
}

// SetSection records a new section selection, repopulates the dependent
// sub-section options and drops any previously chosen sub-section, then
// pushes the change. A sub-section chosen under the old section is never
// carried over even when the new set happens to contain it.
func (f *FilterCascade) SetSection(ctx context.Context, section string) error {
	if err := f.RefreshSubSections(ctx, section); err != nil {
		return err
	}

	f.mu.Lock()
	f.selection.Section = section
	f.selection.SubSection = ""
	f.mu.Unlock()

	f.pushChange()
	return nil
}

// SetSubSection records a sub-section selection. The sentinel and unknown
// values both mean "all".
func (f *FilterCascade) SetSubSection(subSection string) {
	f.mu.Lock()
	if subSection == AllSubSections || !contains(f.subSections, subSection) {
		subSection = ""
	}
	f.selection.SubSection = subSection
	f.mu.Unlock()
	f.pushChange()
}

// SetCategory records a category selection.
func (f *FilterCascade) SetCategory(category string) {
	f.mu.Lock()
	f.selection.Category = category
	f.mu.Unlock()
	f.pushChange()
}

// SetStatus records a status selection.
func (f *FilterCascade) SetStatus(status string) {
	f.mu.Lock()
	f.selection.Status = status
	f.mu.Unlock()
	f.pushChange()
}

// SetDate records a date selection.
func (f *FilterCascade) SetDate(date string) {
	f.mu.Lock()
	f.selection.Date = date
	f.mu.Unlock()
	f.pushChange()
}

// Selection returns the current filter selection.
func (f *FilterCascade) Selection() ReportFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selection
}

// Sections returns the loaded section options.
func (f *FilterCascade) Sections() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.sections...)
}

// Categories returns the loaded category options.
func (f *FilterCascade) Categories() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.categories...)
}

// SubSectionOptions returns the current sub-section options, sentinel first.
func (f *FilterCascade) SubSectionOptions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.subSections...)
}

func (f *FilterCascade) pushChange() {
	f.mu.Lock()
	fn := f.onChange
	selection := f.selection
	f.mu.Unlock()
	if fn != nil {
		fn(selection)
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
