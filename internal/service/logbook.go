package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitweb/fitweb/internal/model"
	"github.com/fitweb/fitweb/internal/reconcile"
	"github.com/fitweb/fitweb/internal/upstream"
)

var (
	// ErrEntryNotCached means the edit target is not in the session's last
	// fetched history; the client must list before editing.
	ErrEntryNotCached = errors.New("log entry not in cached history")

	// ErrDeleteNotArmed means a delete confirmation arrived for an entry that
	// was not the one pending.
	ErrDeleteNotArmed = errors.New("delete not armed for this entry")

	// ErrKindMismatch means the edit payload's kind does not match the kind
	// of the cached entry it targets.
	ErrKindMismatch = errors.New("payload kind does not match entry")
)

// LogbookService orchestrates the log history edit flow: listing primes a
// per-session cache, edits decompose cached rows into structured fields,
// and a confirmed save patches the cache in place only after the tracker
// API accepts the change. Deletes are two-step: arm, then confirm.
type LogbookService struct {
	tracker *upstream.Client
	cache   *reconcile.EntryCache
	pending *reconcile.PendingDeletes
}

func NewLogbookService(tracker *upstream.Client) *LogbookService {
	return &LogbookService{
		tracker: tracker,
		cache:   reconcile.NewEntryCache(),
		pending: reconcile.NewPendingDeletes(),
	}
}

// History fetches the filtered log history and primes the session cache with
// it. A fresh list also disarms any pending delete.
func (s *LogbookService) History(ctx context.Context, token, sessionID, rng, typ string) ([]model.LogEntry, error) {
	entries, err := s.tracker.LogHistory(ctx, token, rng, typ)
	if err != nil {
		return nil, fmt.Errorf("fetch log history: %w", err)
	}
	s.cache.Prime(sessionID, entries)
	s.pending.Clear(sessionID)
	if entries == nil {
		entries = []model.LogEntry{}
	}
	return entries, nil
}

// Fields decomposes a cached entry into its editable field set. Opening an
// edit form on a different row disarms a pending delete.
func (s *LogbookService) Fields(sessionID, entryID string) (reconcile.Fields, error) {
	entry, ok := s.cache.Entry(sessionID, entryID)
	if !ok {
		return reconcile.Fields{}, ErrEntryNotCached
	}
	s.pending.ClearIfOther(sessionID, entryID)
	return reconcile.Decompose(entry)
}

// Update pushes the edited fields upstream and, only on success, recomposes
// the display row and patches the cache. A rejected save changes nothing
// locally.
func (s *LogbookService) Update(ctx context.Context, token, sessionID, entryID string, f reconcile.Fields) (model.LogEntry, error) {
	entry, ok := s.cache.Entry(sessionID, entryID)
	if !ok {
		return model.LogEntry{}, ErrEntryNotCached
	}
	if entry.Type != f.Kind {
		return model.LogEntry{}, ErrKindMismatch
	}

	payload, err := f.UpdatePayload()
	if err != nil {
		return model.LogEntry{}, err
	}
	s.pending.ClearIfOther(sessionID, entryID)

	err = s.tracker.UpdateLog(ctx, token, f.Kind, entryID, payload)
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("update log entry: %w", err)
	}

	patched, err := reconcile.Recompose(f, entry)
	if err != nil {
		// Upstream accepted the write but the local patch failed; drop the
		// cache so the next list refetches instead of showing stale rows.
		s.cache.Drop(sessionID)
		return model.LogEntry{}, err
	}
	s.cache.Patch(sessionID, patched)
	return patched, nil
}

// Delete is the two-step flow. The first call arms the entry and reports
// armed=true without touching upstream; the confirming call performs the
// delete and removes the row from the cache. Confirming an unarmed entry is
// refused.
func (s *LogbookService) Delete(ctx context.Context, token, sessionID string, kind model.EntryKind, entryID string, confirmed bool) (armed bool, err error) {
	if !confirmed {
		s.pending.Arm(sessionID, entryID)
		return true, nil
	}

	if s.pending.Armed(sessionID) != entryID {
		return false, ErrDeleteNotArmed
	}
	err = s.tracker.DeleteLog(ctx, token, kind, entryID)
	if err != nil {
		// Still armed; the client may retry the confirmation.
		return false, fmt.Errorf("delete log entry: %w", err)
	}
	s.pending.Confirm(sessionID, entryID)
	s.cache.Remove(sessionID, entryID)
	return false, nil
}

// Cancel disarms any pending delete for the session.
func (s *LogbookService) Cancel(sessionID string) {
	s.pending.Clear(sessionID)
}

// Forget drops all per-session edit state on logout or invalidation.
func (s *LogbookService) Forget(sessionID string) {
	s.cache.Drop(sessionID)
	s.pending.Clear(sessionID)
}
