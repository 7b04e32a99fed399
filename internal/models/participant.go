package models

import "time"

// ParticipantStatus describes where a participant currently sits in the
// matchmaking lifecycle.
type ParticipantStatus string

const (
	// StatusIdle means the participant is connected but not queued, listed
	// or chatting.
	StatusIdle ParticipantStatus = "idle"
	// StatusWaiting means the participant sits in the random match queue.
	StatusWaiting ParticipantStatus = "waiting"
	// StatusDirectoryListed means the participant opted into the browsable
	// directory.
	StatusDirectoryListed ParticipantStatus = "directory_listed"
	// StatusChatting means the participant is in an active session.
	StatusChatting ParticipantStatus = "chatting"
)

// DefaultNickname is assigned to every participant at connect time until
// they pick their own.
const DefaultNickname = "Anonymous"

// Participant is one connected endpoint. The connection id is assigned by
// the transport layer at connect time and is never reused while the
// participant is live.
type Participant struct {
	// ID is the opaque connection id.
	ID string `json:"id"`
	// Nickname is the display name, "Anonymous" until changed.
	Nickname string `json:"nickname"`
	// Status is the current lifecycle status.
	Status ParticipantStatus `json:"status"`
	// PartnerID references the session partner, set only while chatting.
	PartnerID string `json:"partner_id,omitempty"`
	// SessionID references the active session, set only while chatting.
	SessionID string `json:"session_id,omitempty"`
	// ConnectedAt is the timestamp of the transport connect.
	ConnectedAt time.Time `json:"connected_at"`
}
