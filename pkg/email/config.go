package email

import "time"

// Provider names an email backend.
type Provider string

const (
	ProviderBrevo    Provider = "brevo"
	ProviderResend   Provider = "resend"
	ProviderPostmark Provider = "postmark"
	ProviderDev      Provider = "dev"
)

// Config selects and configures the email backend. When EMAIL_PROVIDER is
// empty the first provider with credentials wins, in the order Brevo,
// Resend, Postmark, and the dev sender is used when none has any. The dev
// sender never reaches a mailbox, so it must not back a production process.
type Config struct {
	Provider     Provider      `env:"EMAIL_PROVIDER"`
	SenderEmail  string        `env:"SENDER_EMAIL" envDefault:"no-reply@netandconnect.fr"`
	SenderName   string        `env:"SENDER_NAME" envDefault:"Net&Connect"`
	SupportEmail string        `env:"SUPPORT_EMAIL"`
	Timeout      time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`

	BrevoAPIKey  string `env:"BREVO_API_KEY"`
	BrevoBaseURL string `env:"BREVO_BASE_URL" envDefault:"https://api.brevo.com"`

	ResendAPIKey  string `env:"RESEND_API_KEY"`
	ResendBaseURL string `env:"RESEND_BASE_URL" envDefault:"https://api.resend.com"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	DevDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// ResolvedProvider returns the backend NewSender will build.
func (c Config) ResolvedProvider() Provider {
	if c.Provider != "" {
		return c.Provider
	}
	switch {
	case c.BrevoAPIKey != "":
		return ProviderBrevo
	case c.ResendAPIKey != "":
		return ProviderResend
	case c.PostmarkServerToken != "":
		return ProviderPostmark
	default:
		return ProviderDev
	}
}

// IsDev reports whether emails stay on the local disk.
func (c Config) IsDev() bool { return c.ResolvedProvider() == ProviderDev }
