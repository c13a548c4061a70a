package reconcile

import "sync"

// PendingDeletes implements the two-step delete confirmation. A session has
// at most one armed entry at a time; arming a different row, starting an
// edit elsewhere, or cancelling clears the previous one.
type PendingDeletes struct {
	mu    sync.Mutex
	armed map[string]string // session id -> entry id
}

func NewPendingDeletes() *PendingDeletes {
	return &PendingDeletes{armed: make(map[string]string)}
}

// Arm marks an entry as pending deletion for the session, replacing any
// previously armed entry.
func (p *PendingDeletes) Arm(sessionID, entryID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.armed[sessionID] = entryID
}

// Armed returns the entry currently pending deletion, or "".
func (p *PendingDeletes) Armed(sessionID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.armed[sessionID]
}

// Confirm reports whether entryID was the armed entry and disarms it. A
// confirmation for anything other than the armed entry is refused.
func (p *PendingDeletes) Confirm(sessionID, entryID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.armed[sessionID] != entryID {
		return false
	}
	delete(p.armed, sessionID)
	return true
}

// ClearIfOther disarms the pending delete when activity moves to a different
// row. Touching the armed row itself keeps it armed.
func (p *PendingDeletes) ClearIfOther(sessionID, entryID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if armed, ok := p.armed[sessionID]; ok && armed != entryID {
		delete(p.armed, sessionID)
	}
}

// Clear disarms any pending delete for the session.
func (p *PendingDeletes) Clear(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.armed, sessionID)
}
