package logger

import (
	"log/slog"
	"strings"
	"time"
)

// Error logs err under "error". A nil error yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component names the subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names what happened, e.g. "magic_link.sent".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Email records an address with its local part masked to the first
// character: "a***@example.com".
func Email(address string) slog.Attr {
	return slog.String("email", MaskEmail(address))
}

// MemberID records the member record id.
func MemberID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("member_id", id)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// MaskEmail hides most of the local part of an email address.
func MaskEmail(address string) string {
	at := strings.LastIndexByte(address, '@')
	if at <= 0 {
		if address == "" {
			return ""
		}
		return "***"
	}
	return address[:1] + "***" + address[at:]
}
