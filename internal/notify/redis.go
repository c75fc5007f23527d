package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tbourn/go-proposal-backend/internal/services"
)

// DefaultChannel is the pub/sub channel used when none is configured.
const DefaultChannel = "proposals:events"

// Message is the JSON payload published for every event.
type Message struct {
	Type        string    `json:"type"`
	ProposalID  string    `json:"proposal_id"`
	SongID      int64     `json:"song_id"`
	StationID   int64     `json:"station_id"`
	ArtistID    int64     `json:"artist_id"`
	Status      int       `json:"status"`
	StatusLabel string    `json:"status_label"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// RedisPublisher publishes events on a Redis pub/sub channel so other
// services can react to proposal changes.
type RedisPublisher struct {
	Client  redis.UniversalClient
	Channel string
}

// NewRedisPublisher returns a publisher on channel (DefaultChannel if empty).
func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{Client: client, Channel: channel}
}

// Dispatch implements services.Dispatcher.
func (p *RedisPublisher) Dispatch(ctx context.Context, ev services.Event) error {
	msg := Message{
		Type:        string(ev.Type),
		ProposalID:  ev.Proposal.ID,
		SongID:      ev.Proposal.SongID,
		StationID:   ev.Proposal.StationID,
		ArtistID:    ev.Proposal.ArtistID,
		Status:      int(ev.Proposal.Status),
		StatusLabel: ev.Proposal.Status.String(),
		OccurredAt:  ev.OccurredAt,
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.Client.Publish(ctx, p.Channel, b).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.Channel, err)
	}
	return nil
}
