package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-proposal-backend/internal/services"
)

// LogDispatcher writes every event as a structured log line. It never fails.
type LogDispatcher struct {
	// Logger overrides the request-scoped/global logger.
	Logger *zerolog.Logger
}

// Dispatch implements services.Dispatcher.
func (d LogDispatcher) Dispatch(ctx context.Context, ev services.Event) error {
	l := d.Logger
	if l == nil {
		l = zerolog.Ctx(ctx)
		if l.GetLevel() == zerolog.Disabled {
			l = &log.Logger
		}
	}

	emails := make([]string, 0, len(ev.Recipients))
	for _, r := range ev.Recipients {
		if r.Email != "" {
			emails = append(emails, r.Email)
		}
	}
	l.Info().
		Str("event", string(ev.Type)).
		Str("proposal_id", ev.Proposal.ID).
		Int64("song_id", ev.Proposal.SongID).
		Int64("station_id", ev.Proposal.StationID).
		Str("status", ev.Proposal.Status.String()).
		Strs("recipients", emails).
		Time("occurred_at", ev.OccurredAt).
		Msg("proposal event")
	return nil
}
