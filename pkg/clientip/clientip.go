// Package clientip resolves the address of the client behind the proxies in
// front of the portal and keeps it in the request context.
//
// Forwarding headers are only believed when the direct peer is a trusted
// proxy. Without trusted proxies the peer address is the client address.
package clientip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ErrInvalidProxy is returned for a trusted proxy that is neither an IP nor
// a CIDR prefix.
var ErrInvalidProxy = errors.New("clientip: invalid trusted proxy")

// Config lists the proxies allowed to report the client address.
type Config struct {
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Single-value headers set by edge proxies, consulted in order before
// X-Forwarded-For.
var edgeHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
}

// Resolver extracts the client IP of a request.
type Resolver struct {
	trusted []netip.Prefix
}

// New returns a Resolver trusting the given IPs and CIDR prefixes.
func New(trusted ...string) (*Resolver, error) {
	r := &Resolver{}
	for _, s := range trusted {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.Contains(s, "/") {
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, s)
			}
			r.trusted = append(r.trusted, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, s)
		}
		addr = addr.Unmap()
		r.trusted = append(r.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return r, nil
}

// NewFromConfig is New over cfg.TrustedProxies.
func NewFromConfig(cfg Config) (*Resolver, error) {
	return New(cfg.TrustedProxies...)
}

// GetIP returns the normalized client IP, or "" when none can be parsed.
//
// For a trusted peer the edge headers win, then the rightmost
// X-Forwarded-For entry that is not itself a trusted proxy, then X-Real-IP.
func (res *Resolver) GetIP(r *http.Request) string {
	peer := remoteAddr(r)
	if !res.isTrusted(peer) {
		return format(peer)
	}

	for _, h := range edgeHeaders {
		if ip, ok := parse(r.Header.Get(h)); ok {
			return format(ip)
		}
	}
	if ip, ok := res.forwardedFor(r.Header.Values("X-Forwarded-For")); ok {
		return format(ip)
	}
	if ip, ok := parse(r.Header.Get("X-Real-IP")); ok {
		return format(ip)
	}
	return format(peer)
}

// forwardedFor walks the chain from the closest hop outwards and stops at
// the first address that is not a trusted proxy. Entries further left are
// client-supplied. A chain made only of trusted proxies yields its first
// entry.
func (res *Resolver) forwardedFor(values []string) (netip.Addr, bool) {
	var chain []netip.Addr
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if ip, ok := parse(part); ok {
				chain = append(chain, ip)
			}
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if !res.isTrusted(chain[i]) {
			return chain[i], true
		}
	}
	if len(chain) > 0 {
		return chain[0], true
	}
	return netip.Addr{}, false
}

func (res *Resolver) isTrusted(ip netip.Addr) bool {
	if !ip.IsValid() {
		return false
	}
	for _, p := range res.trusted {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

// Middleware resolves the client IP once per request.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.GetIP(r))))
	})
}

var direct = &Resolver{}

// GetIP returns the peer address of r, ignoring forwarding headers.
func GetIP(r *http.Request) string { return direct.GetIP(r) }

func remoteAddr(r *http.Request) netip.Addr {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	ip, _ := parse(host)
	return ip
}

func parse(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap().WithZone(""), true
}

func format(ip netip.Addr) string {
	if !ip.IsValid() {
		return ""
	}
	return ip.String()
}

type contextKey struct{}

// WithContext stores ip in ctx.
func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// FromContext returns the IP stored by Resolver.Middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}
