package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-proposal-backend/internal/domain"
)

// EventType names a proposal lifecycle event.
type EventType string

const (
	EventProposalCreated  EventType = "ProposalCreated"
	EventProposalAccepted EventType = "ProposalAccepted"
	EventProposalRejected EventType = "ProposalRejected"
)

// Contact is a notification recipient.
type Contact struct {
	Kind  string `json:"kind"` // station|artist|agent
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Event is handed to a Dispatcher after a committed state change.
type Event struct {
	Type       EventType       `json:"type"`
	Proposal   domain.Proposal `json:"proposal"`
	Recipients []Contact       `json:"recipients"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Dispatcher delivers proposal events out of band (e-mail, pub/sub, logs).
// Implementations live in internal/notify.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event) error
}

// stationContacts returns the station as the single recipient.
func stationContacts(st domain.Station) []Contact {
	return []Contact{{Kind: "station", Name: st.Name, Email: st.Email}}
}

// songContacts returns the song's owners and their agents, each e-mail once.
func songContacts(s domain.Song) []Contact {
	seen := make(map[string]struct{})
	out := make([]Contact, 0, len(s.Artists)*2)
	add := func(c Contact) {
		if c.Email != "" {
			if _, dup := seen[c.Email]; dup {
				return
			}
			seen[c.Email] = struct{}{}
		}
		out = append(out, c)
	}
	for _, a := range s.Artists {
		add(Contact{Kind: "artist", Name: a.Name, Email: a.Email})
		if a.Agent != nil {
			add(Contact{Kind: "agent", Name: a.Agent.Name, Email: a.Agent.Email})
		}
	}
	return out
}

// ctxLogger returns the request-scoped logger, or the global one when the
// context carries none.
func ctxLogger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}
