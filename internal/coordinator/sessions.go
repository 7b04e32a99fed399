package coordinator

import (
	"fmt"
	"time"

	"strangerchat/backend/internal/models"
)

// SessionTable records the paired participants, their lifecycle and their
// transcripts. Sessions are indexed under a canonical key derived from the
// two participant ids, so lookup by either participant is O(1).
type SessionTable struct {
	registry      *Registry
	sessions      map[string]*models.Session
	byParticipant map[string]string
}

func NewSessionTable(registry *Registry) *SessionTable {
	return &SessionTable{
		registry:      registry,
		sessions:      make(map[string]*models.Session),
		byParticipant: make(map[string]string),
	}
}

// sessionKey is deterministic for an unordered pair of participant ids.
func sessionKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

// Start pairs the two participants into a new active session and moves
// both to chatting. Fails with Conflict when either already has an active
// session; under the coordinator's serialization that indicates a bug
// upstream, the check is defensive only.
func (t *SessionTable) Start(idA, idB string, origin models.SessionOrigin) (models.Session, error) {
	if sid, ok := t.byParticipant[idA]; ok {
		return models.Session{}, fmt.Errorf("start: %s already in session %s: %w", idA, sid, ErrConflict)
	}
	if sid, ok := t.byParticipant[idB]; ok {
		return models.Session{}, fmt.Errorf("start: %s already in session %s: %w", idB, sid, ErrConflict)
	}
	u1, u2 := idA, idB
	if u2 < u1 {
		u1, u2 = u2, u1
	}
	s := &models.Session{
		ID:        sessionKey(idA, idB),
		User1ID:   u1,
		User2ID:   u2,
		Origin:    origin,
		IsActive:  true,
		StartedAt: time.Now(),
	}
	t.sessions[s.ID] = s
	t.byParticipant[idA] = s.ID
	t.byParticipant[idB] = s.ID
	_ = t.registry.Transition(idA, models.StatusChatting, idB, s.ID)
	_ = t.registry.Transition(idB, models.StatusChatting, idA, s.ID)
	return *s, nil
}

// Get returns a snapshot of the session by id.
func (t *SessionTable) Get(sessionID string) (models.Session, bool) {
	s, ok := t.sessions[sessionID]
	if !ok {
		return models.Session{}, false
	}
	return t.snapshot(s), true
}

// ByParticipant returns a snapshot of the participant's active session.
func (t *SessionTable) ByParticipant(id string) (models.Session, bool) {
	sid, ok := t.byParticipant[id]
	if !ok {
		return models.Session{}, false
	}
	return t.Get(sid)
}

// AppendMessage appends to the transcript with a server-assigned
// timestamp. Client timestamps are never trusted for ordering or storage.
// Fails with NotFound when no active session has the id and Forbidden when
// the sender is not one of the session's two participants.
func (t *SessionTable) AppendMessage(sessionID, from, content string) (models.Message, error) {
	s, ok := t.sessions[sessionID]
	if !ok || !s.IsActive {
		return models.Message{}, fmt.Errorf("append to session %s: %w", sessionID, ErrNotFound)
	}
	if !s.Has(from) {
		return models.Message{}, fmt.Errorf("append by %s to session %s: %w", from, sessionID, ErrForbidden)
	}
	msg := models.Message{
		SenderID:    from,
		RecipientID: s.Other(from),
		Content:     content,
		Timestamp:   time.Now(),
	}
	s.Transcript = append(s.Transcript, msg)
	return msg, nil
}

// End tears the session down: stamps the end time and reason, drops the
// participant index and resets whichever participants are still registered
// back to idle. Idempotent; ending an already-ended session reports false
// and mutates nothing.
func (t *SessionTable) End(sessionID string, reason models.EndReason) bool {
	s, ok := t.sessions[sessionID]
	if !ok || !s.IsActive {
		return false
	}
	s.IsActive = false
	s.EndedAt = time.Now()
	s.EndReason = reason
	delete(t.byParticipant, s.User1ID)
	delete(t.byParticipant, s.User2ID)
	// In the disconnect path the leaving participant is excised from the
	// registry separately; the NotFound from their reset is discarded.
	_ = t.registry.Transition(s.User1ID, models.StatusIdle, "", "")
	_ = t.registry.Transition(s.User2ID, models.StatusIdle, "", "")
	return true
}

func (t *SessionTable) snapshot(s *models.Session) models.Session {
	out := *s
	out.Transcript = make([]models.Message, len(s.Transcript))
	copy(out.Transcript, s.Transcript)
	return out
}
