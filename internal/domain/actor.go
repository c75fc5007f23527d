package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Role identifies the kind of actor performing an operation.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAgent   Role = "agent"
	RoleArtist  Role = "artist"
	RoleStation Role = "station"
)

// ParseRole returns the Role named by s (case-insensitive).
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleAgent, RoleArtist, RoleStation:
		return r, true
	}
	return "", false
}

// Actor is the caller on whose authority a workflow operation runs. It is
// passed explicitly to every service call.
type Actor struct {
	ID   int64
	Role Role
}

// Is reports whether the actor has the given role and id.
func (a Actor) Is(role Role, id int64) bool {
	return a.Role == role && a.ID == id
}

// StationRef is the station addressed by a proposal request: either a real
// station id or the "all stations" sentinel. The sentinel only exists at the
// request boundary and is never stored.
type StationRef struct {
	ID  int64
	All bool
}

// AllStationsToken is the wire value of the "all stations" sentinel.
const AllStationsToken = "all"

var errBadStationRef = errors.New(`stationId must be a positive integer or "all"`)

// UnmarshalJSON accepts a JSON number or the string "all". Numeric strings
// ("5") are accepted too.
func (r *StationRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errBadStationRef
		}
		s = strings.TrimSpace(s)
		if strings.EqualFold(s, AllStationsToken) {
			*r = StationRef{All: true}
			return nil
		}
		b = []byte(s)
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil || id <= 0 {
		return errBadStationRef
	}
	*r = StationRef{ID: id}
	return nil
}

// MarshalJSON writes the id, or "all" for the sentinel.
func (r StationRef) MarshalJSON() ([]byte, error) {
	if r.All {
		return json.Marshal(AllStationsToken)
	}
	return json.Marshal(r.ID)
}
