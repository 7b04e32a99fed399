package coordinator

import (
	"fmt"

	"strangerchat/backend/internal/models"
)

// Directory is the opt-in browsable pool. Entries keep insertion order so
// every subscriber sees the same stable listing. Connect requests are not
// tracked beyond forwarding: the handshake's durability is the caller's
// responsibility, matching the reference behavior.
type Directory struct {
	registry *Registry
	entries  map[string]*models.DirectoryEntry
	order    []string
}

func NewDirectory(registry *Registry) *Directory {
	return &Directory{
		registry: registry,
		entries:  make(map[string]*models.DirectoryEntry),
	}
}

// Join upserts the participant's entry, marks them directory-listed and
// returns the updated full list for broadcast. A re-join keeps the
// original listing position.
func (d *Directory) Join(id, nickname string, profile map[string]any) []models.DirectoryEntry {
	if _, ok := d.entries[id]; !ok {
		d.order = append(d.order, id)
	}
	d.entries[id] = &models.DirectoryEntry{ID: id, Nickname: nickname, Profile: profile}
	_ = d.registry.Transition(id, models.StatusDirectoryListed, "", "")
	return d.List()
}

// Leave removes the entry, reporting whether the directory changed.
func (d *Directory) Leave(id string) bool {
	if _, ok := d.entries[id]; !ok {
		return false
	}
	delete(d.entries, id)
	for i, listed := range d.order {
		if listed == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns every entry in listing order. Callers browsing the
// directory filter out their own entry themselves; the structure serves
// all subscribers alike.
func (d *Directory) List() []models.DirectoryEntry {
	out := make([]models.DirectoryEntry, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, *d.entries[id])
	}
	return out
}

// RequestConnect builds the payload forwarded to the target of a connect
// request: the requester's id plus their directory entry. A requester who
// is not listed themselves still gets a minimal id+nickname profile. Fails
// when the target is not listed.
func (d *Directory) RequestConnect(fromID, toID string) (models.DirectoryEntry, error) {
	if _, ok := d.entries[toID]; !ok {
		return models.DirectoryEntry{}, fmt.Errorf("connect request to %s: %w", toID, ErrNotFound)
	}
	if e, ok := d.entries[fromID]; ok {
		return *e, nil
	}
	p, ok := d.registry.Get(fromID)
	if !ok {
		return models.DirectoryEntry{}, fmt.Errorf("connect request from %s: %w", fromID, ErrNotFound)
	}
	return models.DirectoryEntry{ID: p.ID, Nickname: p.Nickname}, nil
}

// AcceptConnect validates that both ends of an accepted request are still
// live. The pairing itself is the coordinator's job; accepting a request
// that was never sent is not rejected, matching the reference behavior.
func (d *Directory) AcceptConnect(accepterID, requesterID string) error {
	if _, ok := d.registry.Get(accepterID); !ok {
		return fmt.Errorf("accept by %s: %w", accepterID, ErrNotFound)
	}
	if _, ok := d.registry.Get(requesterID); !ok {
		return fmt.Errorf("accept of %s: %w", requesterID, ErrNotFound)
	}
	return nil
}
