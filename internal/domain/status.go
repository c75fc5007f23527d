package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ProposalStatus is the resolution state of a proposal. Values are stored as
// integers and exchanged as integers on the wire (Pending=0, Accepted=1,
// Rejected=2).
type ProposalStatus int

const (
	StatusPending  ProposalStatus = 0
	StatusAccepted ProposalStatus = 1
	StatusRejected ProposalStatus = 2
)

// statusPresentation is the single label/color mapping shared by every
// consumer that renders a status.
var statusPresentation = map[ProposalStatus]struct{ label, color string }{
	StatusPending:  {"Pending", "warning"},
	StatusAccepted: {"Accepted", "success"},
	StatusRejected: {"Rejected", "error"},
}

// Valid reports whether s is one of the known statuses.
func (s ProposalStatus) Valid() bool {
	_, ok := statusPresentation[s]
	return ok
}

// Terminal reports whether no further transition is allowed from s.
func (s ProposalStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo reports whether s may move to next.
// Only Pending -> Accepted and Pending -> Rejected are legal.
func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	return s == StatusPending && next.Terminal()
}

// String returns the canonical label ("Pending", "Accepted", "Rejected").
func (s ProposalStatus) String() string {
	if p, ok := statusPresentation[s]; ok {
		return p.label
	}
	return "Unknown(" + strconv.Itoa(int(s)) + ")"
}

// Color returns the presentation color for s ("warning", "success", "error").
func (s ProposalStatus) Color() string {
	if p, ok := statusPresentation[s]; ok {
		return p.color
	}
	return "default"
}

// ParseProposalStatus accepts either the integer value ("1") or the
// case-insensitive label ("accepted").
func ParseProposalStatus(v string) (ProposalStatus, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		s := ProposalStatus(n)
		if !s.Valid() {
			return 0, fmt.Errorf("unknown proposal status %d", n)
		}
		return s, nil
	}
	for s, p := range statusPresentation {
		if strings.EqualFold(p.label, v) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown proposal status %q", v)
}
