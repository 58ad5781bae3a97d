package dashboard

import (
	"context"
	"errors"
)

// Holiday statuses as served by the API.
const (
	StatusDraft     = "draft"
	StatusProcessed = "processed"
	StatusFinalized = "finalized"
)

// Action is a lifecycle operation offered on a holiday row.
type Action string

const (
	ActionProcess  Action = "process"
	ActionFinalize Action = "finalize"
	ActionDelete   Action = "delete"
)

// ErrValidation marks input rejected locally before any request is sent.
var ErrValidation = errors.New("validation failed")

// ErrNotPermitted marks an action the current actor may not even attempt.
var ErrNotPermitted = errors.New("action not permitted")

// LifecycleManager owns holiday state transitions. Every successful mutation
// is followed by a full store refresh; nothing here patches the cache in
// place. The admin capability is an explicit parameter of the manager, not
// ambient state.
type LifecycleManager struct {
	client    *Client
	store     *Store
	confirmer Confirmer
	alerter   Alerter
	isAdmin   bool
}

func NewLifecycleManager(client *Client, store *Store, confirmer Confirmer, alerter Alerter, isAdmin bool) *LifecycleManager {
	return &LifecycleManager{
		client:    client,
		store:     store,
		confirmer: confirmer,
		alerter:   alerter,
		isAdmin:   isAdmin,
	}
}

// IsAdmin reports the actor capability the manager was built with.
func (m *LifecycleManager) IsAdmin() bool {
	return m.isAdmin
}

// Create adds a draft holiday. Empty date or name is rejected locally with a
// blocking prompt and no request. A duplicate date is rejected by the server
// and its message is shown verbatim.
func (m *LifecycleManager) Create(ctx context.Context, date, name string) error {
	if date == "" || name == "" {
		m.alerter.Alert("Both date and name are required")
		return ErrValidation
	}

	if _, err := m.client.CreateHoliday(ctx, date, name); err != nil {
		m.alerter.Alert(err.Error())
		return err
	}
	return m.store.Refresh(ctx)
}

// Process imports attendance data for the holiday's date, replacing any
// existing snapshot, so it is gated behind a confirmation.
func (m *LifecycleManager) Process(ctx context.Context, id int64) error {
	if !m.confirmer.Confirm("Process this holiday? Existing attendance data for this date will be replaced.") {
		return nil
	}

	if _, err := m.client.ProcessHoliday(ctx, id); err != nil {
		m.alerter.Alert(err.Error())
		return err
	}
	return m.store.Refresh(ctx)
}

// Finalize locks the holiday against further processing. Irreversible for
// non-admin actors, so it is gated behind a confirmation.
func (m *LifecycleManager) Finalize(ctx context.Context, id int64) error {
	if !m.confirmer.Confirm("Finalize this holiday? It can no longer be processed or edited afterwards.") {
		return nil
	}

	if err := m.client.FinalizeHoliday(ctx, id); err != nil {
		m.alerter.Alert(err.Error())
		return err
	}
	return m.store.Refresh(ctx)
}

// Delete removes the holiday and its snapshot. A finalized holiday may only
// be deleted by an admin actor; for anyone else the request is never sent.
func (m *LifecycleManager) Delete(ctx context.Context, id int64) error {
	if record, ok := m.store.Get(id); ok {
		if record.Status == StatusFinalized && !m.isAdmin {
			return ErrNotPermitted
		}
	}

	if !m.confirmer.Confirm("Delete this holiday?") {
		return nil
	}

	if err := m.client.DeleteHoliday(ctx, id); err != nil {
		m.alerter.Alert(err.Error())
		return err
	}
	return m.store.Refresh(ctx)
}

// Refresh re-reads the holiday list. Everything downstream treats the store
// as the sole source of truth.
func (m *LifecycleManager) Refresh(ctx context.Context) error {
	return m.store.Refresh(ctx)
}

// VisibleActions maps a record's status and the actor's capability to the
// action buttons a row renders. A finalized row shows nothing to a regular
// actor and only a force delete to an admin.
func VisibleActions(status string, isAdmin bool) []Action {
	switch status {
	case StatusDraft:
		return []Action{ActionProcess, ActionFinalize, ActionDelete}
	case StatusProcessed:
		return []Action{ActionFinalize, ActionDelete}
	case StatusFinalized:
		if isAdmin {
			return []Action{ActionDelete}
		}
		return nil
	default:
		return nil
	}
}
