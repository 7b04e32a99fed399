package models

import "time"

// EventType names one kind of wire event.
type EventType string

// Inbound event types. A disconnect is transport-driven (the read pump
// exiting), never a wire event.
const (
	EventJoinRandom     EventType = "join_random"
	EventJoinDirectory  EventType = "join_directory"
	EventSetNickname    EventType = "set_nickname"
	EventConnectRequest EventType = "connect_request"
	EventAcceptRequest  EventType = "accept_request"
	EventSignal         EventType = "signal"
	EventMessage        EventType = "message"
	EventTyping         EventType = "typing"
	EventEndSession     EventType = "end_session"
)

// Outbound event types.
const (
	EventConnected       EventType = "connected"
	EventMatched         EventType = "matched"
	EventDirectoryUpdate EventType = "directory_update"
	EventAccepted        EventType = "accepted"
	EventEnded           EventType = "ended"
	EventParticipantLeft EventType = "participant_left"
	EventError           EventType = "error"
)

// SignalKind is the media-negotiation message class carried by a signal
// event. The coordinator relays the payload opaquely either way; the kinds
// exist for clients and tooling.
type SignalKind string

const (
	SignalOffer     SignalKind = "offer"
	SignalAnswer    SignalKind = "answer"
	SignalCandidate SignalKind = "candidate"
)

// Event is the wire envelope: a type tag plus a type-specific payload.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// --- Inbound payloads. The server stamps the sender from the connection;
// a client-supplied "from" is never trusted.

type JoinDirectoryPayload struct {
	Nickname string         `json:"nickname"`
	Profile  map[string]any `json:"profile,omitempty"`
}

type SetNicknamePayload struct {
	Nickname string `json:"nickname"`
}

type ConnectRequestPayload struct {
	ToID string `json:"to_id"`
}

type AcceptRequestPayload struct {
	RequesterID string `json:"requester_id"`
}

type SignalPayload struct {
	Kind SignalKind `json:"kind"`
	ToID string     `json:"to_id"`
	// Data is the opaque negotiation payload, forwarded verbatim.
	Data any `json:"payload"`
}

type MessagePayload struct {
	ToID    string `json:"to_id"`
	Content string `json:"content"`
}

type TypingPayload struct {
	ToID string `json:"to_id"`
}

type EndSessionPayload struct {
	PartnerID string `json:"partner_id"`
}

// --- Outbound payloads.

type ConnectedPayload struct {
	ID string `json:"id"`
}

type MatchedPayload struct {
	PartnerID string `json:"partner_id"`
}

type AcceptedPayload struct {
	PartnerID string `json:"partner_id"`
}

type ConnectRequestForward struct {
	From    string         `json:"from"`
	Profile DirectoryEntry `json:"profile"`
}

type SignalForward struct {
	Kind SignalKind `json:"kind"`
	From string     `json:"from"`
	Data any        `json:"payload"`
}

type MessageForward struct {
	Content   string    `json:"content"`
	From      string    `json:"from"`
	Timestamp time.Time `json:"timestamp"`
}

type EndedPayload struct {
	By string `json:"by"`
}

type ParticipantLeftPayload struct {
	ID string `json:"id"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
