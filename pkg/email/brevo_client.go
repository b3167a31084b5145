package email

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// BrevoClient sends through the Brevo transactional SMTP API.
type BrevoClient struct {
	cfg  Config
	http *http.Client
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoEmail struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	ReplyTo     *brevoAddress  `json:"replyTo,omitempty"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
}

// NewBrevoClient requires BREVO_API_KEY and a valid sender address.
func NewBrevoClient(cfg Config) (*BrevoClient, error) {
	if cfg.BrevoAPIKey == "" {
		return nil, fmt.Errorf("%w: BrevoAPIKey is required", ErrInvalidConfig)
	}
	if err := validateSender(cfg); err != nil {
		return nil, err
	}
	return &BrevoClient{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}, nil
}

// SendEmail implements EmailSender.
func (c *BrevoClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	msg := brevoEmail{
		Sender:      brevoAddress{Name: c.cfg.SenderName, Email: c.cfg.SenderEmail},
		To:          []brevoAddress{{Email: strings.TrimSpace(params.SendTo)}},
		Subject:     params.Subject,
		HTMLContent: params.BodyHTML,
		TextContent: params.BodyText,
	}
	if c.cfg.SupportEmail != "" {
		msg.ReplyTo = &brevoAddress{Email: c.cfg.SupportEmail}
	}
	if params.Tag != "" {
		msg.Tags = []string{params.Tag}
	}

	header := http.Header{}
	header.Set("api-key", c.cfg.BrevoAPIKey)
	return postJSON(ctx, c.http, strings.TrimRight(c.cfg.BrevoBaseURL, "/")+"/v3/smtp/email", header, msg)
}
