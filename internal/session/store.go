package session

import (
	"sync"

	"maitred/internal/models"
)

// State tracks where a conversation is in the dialogue flow.
type State int

const (
	// StateNormal routes utterances through the regular dispatch.
	StateNormal State = iota
	// StateAwaitingRepeatReply means the caller was offered a repeat of
	// their last order and owes a yes/no.
	StateAwaitingRepeatReply
)

// Session holds the live order and dialogue state for one conversation.
// Callers serialize a whole turn with Lock/Unlock; the mutators assume
// the lock is held.
type Session struct {
	mu            sync.Mutex
	lines         []models.OrderLine
	pendingRepeat []models.OrderLine
	state         State
}

// Lock serializes turn processing for this session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Lines returns a copy of the session's order lines in insertion order.
func (s *Session) Lines() []models.OrderLine {
	out := make([]models.OrderLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Empty reports whether the order holds no lines.
func (s *Session) Empty() bool { return len(s.lines) == 0 }

// Total returns the order's current total.
func (s *Session) Total() float64 { return models.OrderTotal(s.lines) }

// Clear drops every line from the order.
func (s *Session) Clear() { s.lines = nil }

// State returns the session's dialogue state.
func (s *Session) State() State { return s.state }

// SetState moves the session to a new dialogue state.
func (s *Session) SetState(state State) { s.state = state }

// PendingRepeat returns the repeat-offer lines, if any.
func (s *Session) PendingRepeat() []models.OrderLine { return s.pendingRepeat }

// SetPendingRepeat stores a repeat offer and moves the session into the
// awaiting-reply state.
func (s *Session) SetPendingRepeat(lines []models.OrderLine) {
	s.pendingRepeat = lines
	s.state = StateAwaitingRepeatReply
}

// ClearPendingRepeat drops the repeat offer and returns to normal flow.
func (s *Session) ClearPendingRepeat() {
	s.pendingRepeat = nil
	s.state = StateNormal
}

// Merge adds a line to the order, summing quantities when a line with
// the same identity already exists.
func (s *Session) Merge(line models.OrderLine) {
	for i := range s.lines {
		if s.lines[i].Identity.Equal(line.Identity) {
			s.lines[i].Quantity += line.Quantity
			return
		}
	}
	s.lines = append(s.lines, line)
}

// Remove takes up to qty units of the line matching target. It first
// looks for an exact identity match, then falls back to the first line
// sharing the base item so "remove the tea" works however the tea was
// sized. It returns how many units were actually removed; removing more
// than the line holds removes the line entirely.
func (s *Session) Remove(target models.OrderLine, qty int) (removed int, ok bool) {
	idx := -1
	for i := range s.lines {
		if s.lines[i].Identity.Equal(target.Identity) {
			idx = i
			break
		}
	}
	if idx < 0 {
		for i := range s.lines {
			if s.lines[i].Identity.Base == target.Identity.Base {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return 0, false
	}

	line := &s.lines[idx]
	if qty >= line.Quantity {
		removed = line.Quantity
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	} else {
		removed = qty
		line.Quantity -= qty
	}
	return removed, true
}

// Replace finds the best existing line for oldLine by weighted score:
// +2 for a matching base item, +1 for matching ice, +1 per overlapping
// addon. When a line scores above zero it is decremented by oldQty
// (removed when exhausted) and newLine is merged in with its own
// quantity. It returns the replaced line's display name, or ok=false
// when nothing scored, in which case the caller should treat the clause
// as a plain add.
func (s *Session) Replace(oldLine models.OrderLine, oldQty int, newLine models.OrderLine) (replaced string, ok bool) {
	bestIdx := -1
	bestScore := 0
	for i := range s.lines {
		score := replaceScore(s.lines[i].Identity, oldLine.Identity)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return "", false
	}

	target := &s.lines[bestIdx]
	replaced = target.DisplayName
	if oldQty >= target.Quantity {
		s.lines = append(s.lines[:bestIdx], s.lines[bestIdx+1:]...)
	} else {
		target.Quantity -= oldQty
	}
	s.Merge(newLine)
	return replaced, true
}

func replaceScore(existing, requested models.LineIdentity) int {
	score := 0
	if existing.Base == requested.Base {
		score += 2
	}
	if existing.Ice == requested.Ice && existing.Ice != "" {
		score++
	}
	for _, a := range existing.Addons {
		for _, b := range requested.Addons {
			if a == b {
				score++
			}
		}
	}
	return score
}

// Store hands out sessions keyed by session id. It is injected into the
// dialogue engine rather than held as package state so tests get
// isolated stores and teardown is a matter of dropping the value.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it lazily.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok {
		sess = &Session{}
		st.sessions[id] = sess
	}
	return sess
}

// Len reports how many sessions are live.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
