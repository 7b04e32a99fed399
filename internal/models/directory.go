package models

import "encoding/json"

// DirectoryEntry is one row of the browsable directory: the participant's
// id and nickname plus whatever profile fields the client supplied when
// joining.
type DirectoryEntry struct {
	ID       string
	Nickname string
	Profile  map[string]any
}

// MarshalJSON flattens the profile fields into the entry object, producing
// the {id, nickname, ...profile} shape the clients render. The id and
// nickname keys always win over same-named profile fields.
func (e DirectoryEntry) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Profile)+2)
	for k, v := range e.Profile {
		out[k] = v
	}
	out["id"] = e.ID
	out["nickname"] = e.Nickname
	return json.Marshal(out)
}
