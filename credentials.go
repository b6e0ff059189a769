package twinicodo

import (
	"errors"
	"strings"
)

// Cookie holds the three session cookies the search API requires.
type Cookie struct {
	AuthToken   string
	TwitterSess string
	CT0         string
}

// cookieMap splits a "k1=v1; k2=v2" header into its pairs. Pairs without "=" are dropped.
func cookieMap(s string) map[string]string {
	m := make(map[string]string)
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m
}

// ParseCookie extracts auth_token, _twitter_sess and ct0 from a raw cookie header.
// Unknown keys are ignored.
func ParseCookie(raw string) (Cookie, error) {
	m := cookieMap(raw)

	var c Cookie
	var ok bool
	if c.AuthToken, ok = m["auth_token"]; !ok {
		return Cookie{}, &CookieError{Field: "auth_token"}
	}
	if c.TwitterSess, ok = m["_twitter_sess"]; !ok {
		return Cookie{}, &CookieError{Field: "_twitter_sess"}
	}
	if c.CT0, ok = m["ct0"]; !ok {
		return Cookie{}, &CookieError{Field: "ct0"}
	}
	return c, nil
}

// String recomposes the cookie header in fixed key order.
func (c Cookie) String() string {
	return "auth_token=" + c.AuthToken + "; _twitter_sess=" + c.TwitterSess + "; ct0=" + c.CT0
}

// Credentials is the bundle a search session authenticates with.
type Credentials struct {
	AuthorizationToken string
	CSRFToken          string
	Cookie             Cookie
}

// Validate reports whether all five credential values are present.
func (c Credentials) Validate() error {
	var missing []string
	if c.AuthorizationToken == "" {
		missing = append(missing, "authorization token")
	}
	if c.CSRFToken == "" {
		missing = append(missing, "csrf token")
	}
	if c.Cookie.AuthToken == "" {
		missing = append(missing, "auth_token")
	}
	if c.Cookie.TwitterSess == "" {
		missing = append(missing, "_twitter_sess")
	}
	if c.Cookie.CT0 == "" {
		missing = append(missing, "ct0")
	}
	if len(missing) > 0 {
		return errors.New("credentials incomplete: " + strings.Join(missing, ", "))
	}
	return nil
}
