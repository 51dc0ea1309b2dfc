// Package share produces the guest-facing entry points for an event: the
// public upload link, its QR code, and emailed invites.
package share

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"
	qrcode "github.com/skip2/go-qrcode"

	"moments-backend/internal/config"
	"moments-backend/internal/domain"
)

const defaultQRSize = 300

type Service interface {
	EventLink(eventID string) string
	// QRCode renders the event link as a PNG of the given pixel size.
	QRCode(eventID string, size int) ([]byte, error)
	SendInvite(ctx context.Context, toEmail string, event domain.Event) error
}

type service struct {
	client *resend.Client
	cfg    *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		cfg:    cfg,
	}
}

func (s *service) EventLink(eventID string) string {
	scheme := "https"
	if s.cfg.Environment == "development" {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/#/event/%s", scheme, s.cfg.Domain, eventID)
}

func (s *service) QRCode(eventID string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultQRSize
	}
	return qrcode.Encode(s.EventLink(eventID), qrcode.Medium, size)
}

var inviteTmpl = template.Must(template.New("invite").Parse(`
<div style="font-family: sans-serif; max-width: 480px;">
  <h2>{{.HostName}} invited you to share photos at {{.EventName}}</h2>
  {{if .WelcomeMessage}}<p><em>&ldquo;{{.WelcomeMessage}}&rdquo;</em></p>{{end}}
  <p>No account needed. Open the album and start uploading:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
</div>`))

func (s *service) SendInvite(ctx context.Context, toEmail string, event domain.Event) error {
	data := struct {
		EventName      string
		HostName       string
		WelcomeMessage string
		Link           string
	}{
		EventName:      event.Name,
		HostName:       event.HostName,
		WelcomeMessage: event.WelcomeMessage,
		Link:           s.EventLink(event.ID),
	}

	var body bytes.Buffer
	if err := inviteTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute invite template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Moments <%s>", s.cfg.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: fmt.Sprintf("You're invited to %s", event.Name),
	}
	_, err := s.client.Emails.Send(params)
	return err
}
