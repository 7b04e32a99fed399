package models

import "time"

// SessionOrigin records how the two participants of a session were paired.
type SessionOrigin string

const (
	// OriginRandom means the pair came out of the random match queue.
	OriginRandom SessionOrigin = "random"
	// OriginDirectory means the pair came from an accepted directory
	// connect request.
	OriginDirectory SessionOrigin = "directory"
)

// EndReason records why a session was torn down.
type EndReason string

const (
	// EndReasonExplicit means one participant ended the session on purpose.
	EndReasonExplicit EndReason = "explicit"
	// EndReasonDisconnect means a participant's transport dropped.
	EndReasonDisconnect EndReason = "disconnect"
)

// Session is a 1-on-1 pairing between exactly two participants. Its id is
// deterministic from the two participant ids, so a lookup by either
// participant resolves to the same record.
type Session struct {
	// ID is the canonical session key.
	ID string `json:"id"`
	// User1ID is the lexically smaller of the two participant ids.
	User1ID string `json:"user1_id"`
	// User2ID is the lexically larger of the two participant ids.
	User2ID string `json:"user2_id"`
	// Origin is how the pairing happened.
	Origin SessionOrigin `json:"origin"`
	// IsActive indicates whether the session is still running.
	IsActive bool `json:"is_active"`
	// StartedAt is the timestamp when the pairing happened.
	StartedAt time.Time `json:"started_at"`
	// EndedAt is the timestamp of the teardown, zero while active.
	EndedAt time.Time `json:"ended_at,omitempty"`
	// EndReason is set once the session ended.
	EndReason EndReason `json:"end_reason,omitempty"`
	// Transcript is the append-only message history, in coordinator
	// arrival order.
	Transcript []Message `json:"transcript,omitempty"`
}

// Other returns the partner id for the given participant, or "" when the
// participant is not part of the session.
func (s Session) Other(id string) string {
	switch id {
	case s.User1ID:
		return s.User2ID
	case s.User2ID:
		return s.User1ID
	}
	return ""
}

// Has reports whether the participant belongs to the session.
func (s Session) Has(id string) bool {
	return id == s.User1ID || id == s.User2ID
}

// Message is one transcript entry. Immutable once appended; the timestamp
// is server-assigned.
type Message struct {
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
}
