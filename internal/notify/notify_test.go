package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/resend/resend-go/v3"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-proposal-backend/internal/domain"
	"github.com/tbourn/go-proposal-backend/internal/services"
)

func sampleEvent(tp services.EventType) services.Event {
	return services.Event{
		Type: tp,
		Proposal: domain.Proposal{
			ID:          "p-1",
			SongID:      10,
			StationID:   5,
			ArtistID:    1,
			Description: "Great <track>",
			Status:      domain.StatusAccepted,
			Song: domain.Song{
				ID:      10,
				Title:   "Great Track",
				Artists: []domain.Artist{{ID: 1, Name: "Nova"}},
			},
			Station: domain.Station{ID: 5, Name: "Radio Five"},
		},
		Recipients: []services.Contact{
			{Kind: "artist", Name: "Nova", Email: "nova@artists.test"},
			{Kind: "artist", Name: "No Mail"},
			{Kind: "agent", Name: "Ann", Email: "ann@agency.test"},
		},
		OccurredAt: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
	}
}

type fakeSender struct {
	sent []*resend.SendEmailRequest
	fail map[string]bool
}

func (f *fakeSender) Send(req *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.sent = append(f.sent, req)
	if f.fail[req.To[0]] {
		return nil, errors.New("rejected by provider")
	}
	return &resend.SendEmailResponse{Id: "msg"}, nil
}

func TestEmailDispatcher_SendsPerRecipient_SkipsMissingAddress(t *testing.T) {
	fs := &fakeSender{}
	d := &EmailDispatcher{Sender: fs, From: "Proposals <noreply@example.test>"}

	if err := d.Dispatch(context.Background(), sampleEvent(services.EventProposalAccepted)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(fs.sent) != 2 {
		t.Fatalf("expected 2 e-mails, got %d", len(fs.sent))
	}
	first := fs.sent[0]
	if first.From != d.From || first.To[0] != "nova@artists.test" {
		t.Fatalf("unexpected envelope: %+v", first)
	}
	if !strings.Contains(first.Subject, "Great Track") || !strings.Contains(first.Subject, "accepted") {
		t.Fatalf("unexpected subject: %q", first.Subject)
	}
	if !strings.Contains(first.Html, "Hello Nova") || !strings.Contains(first.Html, "Radio Five accepted") {
		t.Fatalf("unexpected body: %s", first.Html)
	}
}

func TestEmailDispatcher_EscapesAndJoinsErrors(t *testing.T) {
	fs := &fakeSender{fail: map[string]bool{"nova@artists.test": true}}
	d := &EmailDispatcher{Sender: fs, From: "noreply@example.test"}

	ev := sampleEvent(services.EventProposalCreated)
	err := d.Dispatch(context.Background(), ev)
	if err == nil || !strings.Contains(err.Error(), "nova@artists.test") {
		t.Fatalf("expected joined send error, got %v", err)
	}
	// The second recipient is still attempted.
	if len(fs.sent) != 2 {
		t.Fatalf("expected both recipients attempted, got %d", len(fs.sent))
	}
	if strings.Contains(fs.sent[1].Html, "<track>") || !strings.Contains(fs.sent[1].Html, "&lt;track&gt;") {
		t.Fatalf("description should be HTML-escaped: %s", fs.sent[1].Html)
	}
}

func TestRedisPublisher_PublishesJSON(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, DefaultChannel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	pub := NewRedisPublisher(client, "")
	if err := pub.Dispatch(ctx, sampleEvent(services.EventProposalAccepted)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	select {
	case m := <-sub.Channel():
		var got Message
		if err := json.Unmarshal([]byte(m.Payload), &got); err != nil {
			t.Fatalf("payload: %v", err)
		}
		if got.Type != "ProposalAccepted" || got.SongID != 10 || got.StationID != 5 || got.StatusLabel != "Accepted" {
			t.Fatalf("unexpected message: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no message received")
	}
}

func TestRedisPublisher_ErrorWhenServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	pub := NewRedisPublisher(client, "events")
	if err := pub.Dispatch(context.Background(), sampleEvent(services.EventProposalCreated)); err == nil {
		t.Fatalf("expected publish error with server down")
	}
}

func TestLogDispatcher_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	d := LogDispatcher{Logger: &l}

	if err := d.Dispatch(context.Background(), sampleEvent(services.EventProposalRejected)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if line["event"] != "ProposalRejected" || line["song_id"] != float64(10) {
		t.Fatalf("unexpected log line: %v", line)
	}
	if rs, _ := line["recipients"].([]any); len(rs) != 2 {
		t.Fatalf("expected 2 recipient addresses, got %v", line["recipients"])
	}
}

type errDispatcher struct{ err error }

func (e errDispatcher) Dispatch(context.Context, services.Event) error { return e.err }

func TestMulti_FansOutAndJoins(t *testing.T) {
	fs := &fakeSender{}
	e1 := errors.New("first")
	e2 := errors.New("second")
	m := Multi{errDispatcher{e1}, nil, &EmailDispatcher{Sender: fs, From: "x@example.test"}, errDispatcher{e2}}

	err := m.Dispatch(context.Background(), sampleEvent(services.EventProposalAccepted))
	if !errors.Is(err, e1) || !errors.Is(err, e2) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
	if len(fs.sent) != 2 {
		t.Fatalf("e-mail dispatcher should still run, sent=%d", len(fs.sent))
	}
	if err := (Multi{LogDispatcher{}}).Dispatch(context.Background(), sampleEvent(services.EventProposalCreated)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
