package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// Panel names the fixed set of switchable panels.
type Panel string

const (
	PanelReport   Panel = "report"
	PanelHolidays Panel = "holidays"
)

// TabCoordinator keeps exactly one panel visible. Activating the holiday
// panel re-reads the holiday list so the management table never shows a
// stale snapshot; other panels switch without any fetch.
type TabCoordinator struct {
	store *Store

	mu     sync.Mutex
	active Panel
}

func NewTabCoordinator(store *Store) *TabCoordinator {
	return &TabCoordinator{store: store, active: PanelReport}
}

// Activate switches the visible panel.
func (t *TabCoordinator) Activate(ctx context.Context, panel Panel) error {
	switch panel {
	case PanelReport, PanelHolidays:
	default:
		return fmt.Errorf("unknown panel: %s", panel)
	}

	t.mu.Lock()
	t.active = panel
	t.mu.Unlock()

	if panel == PanelHolidays {
		return t.store.Refresh(ctx)
	}
	return nil
}

// Active returns the currently visible panel.
func (t *TabCoordinator) Active() Panel {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}
