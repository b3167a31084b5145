// Package cookie sets, reads and clears HTTP cookies with shared defaults.
//
// The session cookie of the portal carries a token that is already signed,
// so values are written as is. Defaults are Path "/", HttpOnly and
// SameSite=Lax; Secure and Domain come from Config.
//
//	m := cookie.NewFromConfig(cfg)
//	m.Set(w, "nc_auth", tok, cookie.WithTTL(24*time.Hour))
//	tok, err := m.Get(r, "nc_auth")
//	m.Delete(w, "nc_auth")
package cookie
