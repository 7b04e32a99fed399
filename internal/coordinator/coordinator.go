package coordinator

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"strangerchat/backend/internal/models"
)

// Inbound is one client event as submitted to the coordinator. The sender
// id is stamped by the transport client from its own connection, never
// taken from the wire.
type Inbound struct {
	SenderID string
	Type     models.EventType
	Payload  json.RawMessage
}

// Coordinator is the single serialization point for all shared
// matchmaking and session state. The Registry, MatchQueue, Directory and
// SessionTable are mutated exclusively by Register, Disconnect and
// Dispatch, and Run calls those from one goroutine, so event handling is
// one-at-a-time: handling of event N, including all its emissions,
// completes before event N+1 starts. That discipline is what keeps the
// pairing and teardown invariants intact under interleaved client events;
// it is load-bearing, not an optimization.
type Coordinator struct {
	RegisterCh   chan Client
	UnregisterCh chan Client
	EventCh      chan Inbound

	clients   map[string]Client
	registry  *Registry
	queue     *MatchQueue
	directory *Directory
	sessions  *SessionTable

	quit chan struct{}
	log  zerolog.Logger
}

func New(log zerolog.Logger) *Coordinator {
	registry := NewRegistry()
	return &Coordinator{
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		EventCh:      make(chan Inbound, 256),
		clients:      make(map[string]Client),
		registry:     registry,
		queue:        NewMatchQueue(registry),
		directory:    NewDirectory(registry),
		sessions:     NewSessionTable(registry),
		quit:         make(chan struct{}),
		log:          log,
	}
}

// Run is the coordinator loop. It must be the only goroutine calling
// Register, Disconnect and Dispatch once the server is live.
func (c *Coordinator) Run() {
	for {
		select {
		case <-c.quit:
			for id, client := range c.clients {
				client.Close()
				delete(c.clients, id)
			}
			return

		case client := <-c.RegisterCh:
			c.Register(client)

		case client := <-c.UnregisterCh:
			c.Unregister(client)

		case ev := <-c.EventCh:
			c.Dispatch(ev)
		}
	}
}

// Stop terminates the Run loop and closes every connected client.
func (c *Coordinator) Stop() {
	close(c.quit)
}

// Register adds a freshly connected client to the registry and greets it
// with its assigned connection id.
func (c *Coordinator) Register(client Client) {
	id := client.GetConnectionID()
	// Connection ids are never reused while live; a second connection
	// presenting the same id (a replayed token) is turned away.
	if _, ok := c.clients[id]; ok {
		c.log.Warn().Str("participant_id", id).Msg("duplicate connection id rejected")
		client.Close()
		return
	}
	c.registry.Register(id)
	c.clients[id] = client
	c.log.Info().Str("participant_id", id).Int("count", len(c.clients)).Msg("participant connected")
	c.emit(id, models.EventConnected, models.ConnectedPayload{ID: id})
}

// Unregister tears down the departing connection, but only when it is the
// one actually registered under its id. A connection that was rejected at
// registration (a replayed token) still unregisters itself when its read
// pump exits; keying the teardown on the client identity, not just the id,
// keeps that from destroying the healthy participant holding the id.
func (c *Coordinator) Unregister(client Client) {
	id := client.GetConnectionID()
	if registered, ok := c.clients[id]; !ok || registered != client {
		return
	}
	c.Disconnect(id)
}

// Disconnect runs the total teardown for a dropped transport: end any
// active session, drain the queue and directory, excise the participant
// and tell everyone left. A leaked queue or directory entry for a dead
// participant would let a live one be matched with a ghost, so cleanup
// here is a correctness requirement. Safe to invoke twice; the repeat is a
// no-op.
func (c *Coordinator) Disconnect(id string) {
	client, ok := c.clients[id]
	if !ok {
		return
	}
	delete(c.clients, id)

	if sess, ok := c.sessions.ByParticipant(id); ok {
		partner := sess.Other(id)
		c.sessions.End(sess.ID, models.EndReasonDisconnect)
		c.emit(partner, models.EventEnded, models.EndedPayload{By: id})
	}
	c.queue.Remove(id)
	if c.directory.Leave(id) {
		c.broadcastDirectory()
	}
	c.registry.Remove(id)
	client.Close()

	c.log.Info().Str("participant_id", id).Int("count", len(c.clients)).Msg("participant disconnected")
	for otherID := range c.clients {
		c.emit(otherID, models.EventParticipantLeft, models.ParticipantLeftPayload{ID: id})
	}
}

// Dispatch executes one inbound event as an atomic unit of work. Handler
// errors are recovered locally: the event is dropped, the sender gets an
// error acknowledgment and no other participant's state is touched.
func (c *Coordinator) Dispatch(ev Inbound) {
	if _, ok := c.registry.Get(ev.SenderID); !ok {
		c.log.Warn().Str("participant_id", ev.SenderID).Str("event", string(ev.Type)).Msg("event from unknown participant dropped")
		return
	}

	var err error
	switch ev.Type {
	case models.EventJoinRandom:
		c.handleJoinRandom(ev.SenderID)
	case models.EventJoinDirectory:
		err = decode(ev.Payload, func(p models.JoinDirectoryPayload) error {
			c.handleJoinDirectory(ev.SenderID, p)
			return nil
		})
	case models.EventSetNickname:
		err = decode(ev.Payload, func(p models.SetNicknamePayload) error {
			return c.registry.SetNickname(ev.SenderID, p.Nickname)
		})
	case models.EventConnectRequest:
		err = decode(ev.Payload, func(p models.ConnectRequestPayload) error {
			return c.handleConnectRequest(ev.SenderID, p)
		})
	case models.EventAcceptRequest:
		err = decode(ev.Payload, func(p models.AcceptRequestPayload) error {
			return c.handleAcceptRequest(ev.SenderID, p)
		})
	case models.EventSignal:
		err = decode(ev.Payload, func(p models.SignalPayload) error {
			return c.handleSignal(ev.SenderID, p)
		})
	case models.EventMessage:
		err = decode(ev.Payload, func(p models.MessagePayload) error {
			return c.handleMessage(ev.SenderID, p)
		})
	case models.EventTyping:
		err = decode(ev.Payload, func(p models.TypingPayload) error {
			c.handleTyping(ev.SenderID, p)
			return nil
		})
	case models.EventEndSession:
		c.handleEndSession(ev.SenderID)
	default:
		c.log.Warn().Str("participant_id", ev.SenderID).Str("event", string(ev.Type)).Msg("unknown event type dropped")
		return
	}

	if err != nil {
		c.recover(ev, err)
	}
}

// recover handles a failed event: log it and acknowledge the sender.
// Conflicts indicate a broken invariant and are logged loudly; they stay
// with the sender like every other handler error.
func (c *Coordinator) recover(ev Inbound, err error) {
	evt := c.log.Warn()
	if errors.Is(err, ErrConflict) {
		evt = c.log.Error()
	}
	evt.Err(err).Str("participant_id", ev.SenderID).Str("event", string(ev.Type)).Msg("event failed")
	c.emit(ev.SenderID, models.EventError, models.ErrorPayload{Code: errorCode(err), Message: err.Error()})
}

func (c *Coordinator) handleJoinRandom(id string) {
	if c.directory.Leave(id) {
		c.broadcastDirectory()
	}
	// A participant re-queueing mid-session abandons the session; the
	// partner is freed and notified.
	if sess, ok := c.sessions.ByParticipant(id); ok {
		c.sessions.End(sess.ID, models.EndReasonExplicit)
		c.emit(sess.Other(id), models.EventEnded, models.EndedPayload{By: id})
	}
	c.queue.Enqueue(id)

	a, b, ok := c.queue.TryPair()
	if !ok {
		return
	}
	if _, err := c.sessions.Start(a, b, models.OriginRandom); err != nil {
		c.log.Error().Err(err).Str("user1", a).Str("user2", b).Msg("random pairing failed")
		return
	}
	c.log.Info().Str("user1", a).Str("user2", b).Msg("random match")
	c.emit(a, models.EventMatched, models.MatchedPayload{PartnerID: b})
	c.emit(b, models.EventMatched, models.MatchedPayload{PartnerID: a})
}

func (c *Coordinator) handleJoinDirectory(id string, p models.JoinDirectoryPayload) {
	c.queue.Remove(id)
	// Entering the browsing pool abandons an active session, the same way
	// re-queueing does; a listed participant is never mid-session.
	if sess, ok := c.sessions.ByParticipant(id); ok {
		c.sessions.End(sess.ID, models.EndReasonExplicit)
		c.emit(sess.Other(id), models.EventEnded, models.EndedPayload{By: id})
	}
	if err := c.registry.SetNickname(id, p.Nickname); err != nil {
		c.log.Warn().Err(err).Str("participant_id", id).Msg("nickname not applied")
	}
	participant, ok := c.registry.Get(id)
	if !ok {
		return
	}
	c.directory.Join(id, participant.Nickname, p.Profile)
	c.broadcastDirectory()
}

func (c *Coordinator) handleConnectRequest(fromID string, p models.ConnectRequestPayload) error {
	profile, err := c.directory.RequestConnect(fromID, p.ToID)
	if err != nil {
		return err
	}
	c.emit(p.ToID, models.EventConnectRequest, models.ConnectRequestForward{From: fromID, Profile: profile})
	return nil
}

func (c *Coordinator) handleAcceptRequest(accepterID string, p models.AcceptRequestPayload) error {
	if err := c.directory.AcceptConnect(accepterID, p.RequesterID); err != nil {
		return err
	}
	if _, err := c.sessions.Start(accepterID, p.RequesterID, models.OriginDirectory); err != nil {
		return err
	}
	// Mutations follow the Start check so a conflicting accept leaves no
	// trace: a queued requester must stay pairable.
	c.queue.Remove(accepterID)
	c.queue.Remove(p.RequesterID)
	c.emit(accepterID, models.EventAccepted, models.AcceptedPayload{PartnerID: p.RequesterID})
	c.emit(p.RequesterID, models.EventAccepted, models.AcceptedPayload{PartnerID: accepterID})

	// A paired couple leaves the browsing pool.
	changed := c.directory.Leave(accepterID)
	changed = c.directory.Leave(p.RequesterID) || changed
	if changed {
		c.broadcastDirectory()
	}
	return nil
}

// handleSignal relays an opaque media-negotiation payload. The payload is
// never inspected or validated; its semantics belong to the peers'
// negotiation layer. Only the target's liveness is checked.
func (c *Coordinator) handleSignal(fromID string, p models.SignalPayload) error {
	if _, ok := c.registry.Get(p.ToID); !ok {
		return errSignalTarget(p.ToID)
	}
	c.emit(p.ToID, models.EventSignal, models.SignalForward{Kind: p.Kind, From: fromID, Data: p.Data})
	return nil
}

func (c *Coordinator) handleMessage(fromID string, p models.MessagePayload) error {
	sender, _ := c.registry.Get(fromID)
	if sender.Status != models.StatusChatting || sender.PartnerID != p.ToID {
		return errNotPartner(fromID, p.ToID)
	}
	msg, err := c.sessions.AppendMessage(sender.SessionID, fromID, p.Content)
	if err != nil {
		return err
	}
	c.emit(p.ToID, models.EventMessage, models.MessageForward{
		Content:   msg.Content,
		From:      msg.SenderID,
		Timestamp: msg.Timestamp,
	})
	return nil
}

// handleTyping forwards a typing pulse best-effort. Nothing is retained
// and a vanished target is not an error.
func (c *Coordinator) handleTyping(fromID string, p models.TypingPayload) {
	if _, ok := c.clients[p.ToID]; !ok {
		return
	}
	c.emit(p.ToID, models.EventTyping, struct{}{})
}

// handleEndSession ends the sender's active session. The partner is taken
// from the session record, not from the wire. With no active session this
// is a no-op, which together with SessionTable.End keeps teardown
// idempotent: a race between an explicit end and a disconnect mutates
// state once and emits one ended event.
func (c *Coordinator) handleEndSession(byID string) {
	sess, ok := c.sessions.ByParticipant(byID)
	if !ok {
		return
	}
	c.sessions.End(sess.ID, models.EndReasonExplicit)
	// The initiator already knows locally; only the partner is told.
	c.emit(sess.Other(byID), models.EventEnded, models.EndedPayload{By: byID})
}

// broadcastDirectory sends the current listing to every listed
// participant, each copy with the recipient's own entry filtered out.
func (c *Coordinator) broadcastDirectory() {
	entries := c.directory.List()
	for _, recipient := range entries {
		view := make([]models.DirectoryEntry, 0, len(entries)-1)
		for _, e := range entries {
			if e.ID != recipient.ID {
				view = append(view, e)
			}
		}
		c.emit(recipient.ID, models.EventDirectoryUpdate, view)
	}
}

// emit queues one outbound event for the target. Fire-and-forget: when the
// client's buffer is full the event is dropped with a warning rather than
// stalling the coordinator. Per-target submission order is preserved
// because emission happens inline in the handler.
func (c *Coordinator) emit(toID string, evType models.EventType, payload any) {
	client, ok := c.clients[toID]
	if !ok {
		return
	}
	select {
	case client.GetSendChannel() <- models.Event{Type: evType, Payload: payload}:
	default:
		c.log.Warn().Str("participant_id", toID).Str("event", string(evType)).Msg("send buffer full, event dropped")
	}
}

// --- read-only accessors, callable only from the coordinator goroutine
// (or from tests driving Dispatch directly).

// Participant returns a snapshot of a live participant.
func (c *Coordinator) Participant(id string) (models.Participant, bool) {
	return c.registry.Get(id)
}

// QueuedIDs returns the random match queue in FIFO order.
func (c *Coordinator) QueuedIDs() []string {
	return c.queue.IDs()
}

// DirectoryList returns the full directory listing.
func (c *Coordinator) DirectoryList() []models.DirectoryEntry {
	return c.directory.List()
}

// SessionFor returns the participant's active session.
func (c *Coordinator) SessionFor(id string) (models.Session, bool) {
	return c.sessions.ByParticipant(id)
}

// decode unmarshals a payload and runs the handler on success. A payload
// that does not parse drops the event.
func decode[T any](raw json.RawMessage, fn func(T) error) error {
	var p T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
	}
	return fn(p)
}
