package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"github.com/tbourn/go-proposal-backend/internal/services"
)

// Sender is the subset of the Resend e-mail API used here.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailDispatcher sends one e-mail per recipient through Resend. Recipients
// without an address are skipped.
type EmailDispatcher struct {
	Sender Sender
	From   string // "Name <addr>" or a bare address
}

// NewEmailDispatcher builds an EmailDispatcher backed by the Resend API.
func NewEmailDispatcher(apiKey, from string) *EmailDispatcher {
	client := resend.NewClient(apiKey)
	return &EmailDispatcher{Sender: client.Emails, From: from}
}

type emailData struct {
	Recipient   string
	SongTitle   string
	Artists     string
	StationName string
	Description string
	Status      string
}

var subjects = map[services.EventType]string{
	services.EventProposalCreated:  "New song proposal: %s",
	services.EventProposalAccepted: "Your song %s was accepted",
	services.EventProposalRejected: "Your song %s was not accepted",
}

var bodies = template.Must(template.New("email").Parse(`
{{define "layout"}}<!DOCTYPE html>
<html><body style="font-family:sans-serif">
<p>Hello {{.Recipient}},</p>
{{template "content" .}}
</body></html>{{end}}
{{define "ProposalCreated"}}{{template "layout" .}}{{end}}
{{define "ProposalAccepted"}}{{template "layout" .}}{{end}}
{{define "ProposalRejected"}}{{template "layout" .}}{{end}}
`))

var contents = map[services.EventType]string{
	services.EventProposalCreated: `{{define "content"}}<p><strong>{{.SongTitle}}</strong> by {{.Artists}} was proposed to {{.StationName}}.</p>
<blockquote>{{.Description}}</blockquote>{{end}}`,
	services.EventProposalAccepted: `{{define "content"}}<p>{{.StationName}} accepted <strong>{{.SongTitle}}</strong>. It is now in the station library.</p>{{end}}`,
	services.EventProposalRejected: `{{define "content"}}<p>{{.StationName}} declined <strong>{{.SongTitle}}</strong>.</p>{{end}}`,
}

func render(tp services.EventType, data emailData) (string, error) {
	content, ok := contents[tp]
	if !ok {
		return "", fmt.Errorf("no e-mail template for %s", tp)
	}
	tmpl, err := bodies.Clone()
	if err != nil {
		return "", err
	}
	if _, err := tmpl.Parse(content); err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}
	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, string(tp), data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// Dispatch implements services.Dispatcher.
func (d *EmailDispatcher) Dispatch(ctx context.Context, ev services.Event) error {
	p := ev.Proposal
	var errs []error
	for _, r := range ev.Recipients {
		if r.Email == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		html, err := render(ev.Type, emailData{
			Recipient:   r.Name,
			SongTitle:   p.Song.Title,
			Artists:     p.Song.ArtistNames(),
			StationName: p.Station.Name,
			Description: p.Description,
			Status:      p.Status.String(),
		})
		if err != nil {
			return err
		}
		_, err = d.Sender.Send(&resend.SendEmailRequest{
			From:    d.From,
			To:      []string{r.Email},
			Html:    html,
			Subject: fmt.Sprintf(subjects[ev.Type], p.Song.Title),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", r.Email, err))
		}
	}
	return errors.Join(errs...)
}
