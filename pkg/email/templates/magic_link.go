package templates

import (
	"fmt"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
)

// MagicLinkParams fills the sign-in email.
type MagicLinkParams struct {
	Link   string
	TTL    time.Duration
	Locale language.Tag
}

type magicLinkCopy struct {
	Subject  string
	Title    string
	Greeting string
	Intro    string
	Button   string
	Ignore   string
	Expiry   string
	Signoff  string
	Team     string
	Fallback string
}

func magicLinkText(p MagicLinkParams) magicLinkCopy {
	minutes := int(p.TTL.Round(time.Minute) / time.Minute)
	if isEnglish(p.Locale) {
		return magicLinkCopy{
			Subject:  "Your magic link to sign in",
			Title:    "Sign in to your account",
			Greeting: "Hello,",
			Intro:    "You asked to sign in to your Net&Connect account. Click the button below to sign in:",
			Button:   "Sign in to Net&Connect",
			Ignore:   "If you did not make this request, you can safely ignore this email.",
			Expiry:   fmt.Sprintf("For security reasons this link expires in %d minutes.", minutes),
			Signoff:  "Best regards,",
			Team:     "The Net&Connect team",
			Fallback: "If the button does not work, copy and paste this link into your browser:",
		}
	}
	return magicLinkCopy{
		Subject:  "Votre lien magique pour vous connecter",
		Title:    "Connectez-vous à votre compte",
		Greeting: "Bonjour,",
		Intro:    "Vous avez demandé à vous connecter à votre compte Net&Connect. Cliquez sur le bouton ci-dessous pour vous connecter :",
		Button:   "Se connecter à Net&Connect",
		Ignore:   "Si vous n'avez pas fait cette demande, vous pouvez ignorer cet email en toute sécurité.",
		Expiry:   fmt.Sprintf("Ce lien expirera dans %d minutes pour des raisons de sécurité.", minutes),
		Signoff:  "Cordialement,",
		Team:     "L'équipe Net&Connect",
		Fallback: "Si le bouton ne fonctionne pas, vous pouvez copier et coller ce lien dans votre navigateur :",
	}
}

// MagicLink renders the HTML sign-in email. Unsafe link schemes are
// replaced by templ's sanitizer.
func MagicLink(p MagicLinkParams) templ.Component {
	return magicLinkEmail(p.Locale.String(), templ.URL(p.Link), magicLinkText(p))
}

// MagicLinkSubject returns the localized subject line.
func MagicLinkSubject(p MagicLinkParams) string {
	return magicLinkText(p).Subject
}

// MagicLinkPlainText returns the plain-text alternative body.
func MagicLinkPlainText(p MagicLinkParams) string {
	c := magicLinkText(p)
	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s\n\n%s\n%s\n", c.Title, c.Intro, p.Link, c.Expiry, c.Signoff, c.Team)
}
