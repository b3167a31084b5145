package app

import "errors"

// ErrDevEmailInProduction is returned when production would print sign-in
// links instead of emailing them.
var ErrDevEmailInProduction = errors.New("app: an email provider must be configured in production")
