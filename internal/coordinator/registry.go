package coordinator

import (
	"fmt"
	"time"

	"strangerchat/backend/internal/models"
)

// Registry owns the participant records. It is not safe for concurrent use
// on its own: every mutation goes through the Coordinator goroutine, and
// reads handed outside that goroutine are value copies.
type Registry struct {
	participants map[string]*models.Participant
}

func NewRegistry() *Registry {
	return &Registry{participants: make(map[string]*models.Participant)}
}

// Register creates an idle participant for a freshly connected transport
// and returns a snapshot of it.
func (r *Registry) Register(id string) models.Participant {
	p := &models.Participant{
		ID:          id,
		Nickname:    models.DefaultNickname,
		Status:      models.StatusIdle,
		ConnectedAt: time.Now(),
	}
	r.participants[id] = p
	return *p
}

// Get returns a snapshot of the participant, if live.
func (r *Registry) Get(id string) (models.Participant, bool) {
	p, ok := r.participants[id]
	if !ok {
		return models.Participant{}, false
	}
	return *p, true
}

// SetNickname updates the display name. An empty name is a silent no-op so
// the default sticks. The name is frozen while the participant is in an
// active session.
func (r *Registry) SetNickname(id, name string) error {
	p, ok := r.participants[id]
	if !ok {
		return fmt.Errorf("set nickname for %s: %w", id, ErrNotFound)
	}
	if name == "" {
		return nil
	}
	if p.Status == models.StatusChatting {
		return fmt.Errorf("set nickname for %s while chatting: %w", id, ErrConflict)
	}
	p.Nickname = name
	return nil
}

// Remove deletes the participant and returns the prior state so the
// coordinator can cascade cleanup from it.
func (r *Registry) Remove(id string) (models.Participant, bool) {
	p, ok := r.participants[id]
	if !ok {
		return models.Participant{}, false
	}
	delete(r.participants, id)
	return *p, true
}

// Transition moves the participant to a new status. PartnerID and
// sessionID are set verbatim: pass them for a chatting transition, pass ""
// to clear them on the way back to idle.
func (r *Registry) Transition(id string, status models.ParticipantStatus, partnerID, sessionID string) error {
	p, ok := r.participants[id]
	if !ok {
		return fmt.Errorf("transition %s: %w", id, ErrNotFound)
	}
	p.Status = status
	p.PartnerID = partnerID
	p.SessionID = sessionID
	return nil
}

// Len returns the number of live participants.
func (r *Registry) Len() int {
	return len(r.participants)
}
