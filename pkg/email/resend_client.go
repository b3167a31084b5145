package email

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ResendClient sends through the Resend API.
type ResendClient struct {
	cfg  Config
	http *http.Client
}

type resendTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type resendEmail struct {
	From    string      `json:"from"`
	To      []string    `json:"to"`
	ReplyTo string      `json:"reply_to,omitempty"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html"`
	Text    string      `json:"text,omitempty"`
	Tags    []resendTag `json:"tags,omitempty"`
}

// NewResendClient requires RESEND_API_KEY and a valid sender address.
func NewResendClient(cfg Config) (*ResendClient, error) {
	if cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("%w: ResendAPIKey is required", ErrInvalidConfig)
	}
	if err := validateSender(cfg); err != nil {
		return nil, err
	}
	return &ResendClient{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}, nil
}

// SendEmail implements EmailSender.
func (c *ResendClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	from := c.cfg.SenderEmail
	if c.cfg.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", c.cfg.SenderName, c.cfg.SenderEmail)
	}

	msg := resendEmail{
		From:    from,
		To:      []string{strings.TrimSpace(params.SendTo)},
		ReplyTo: c.cfg.SupportEmail,
		Subject: params.Subject,
		HTML:    params.BodyHTML,
		Text:    params.BodyText,
	}
	if params.Tag != "" {
		msg.Tags = []resendTag{{Name: "category", Value: params.Tag}}
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.cfg.ResendAPIKey)
	return postJSON(ctx, c.http, strings.TrimRight(c.cfg.ResendBaseURL, "/")+"/emails", header, msg)
}
