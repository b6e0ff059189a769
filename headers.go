package twinicodo

import (
	stealth "github.com/anatolykoptev/go-stealth"
	"golang.org/x/net/http/httpguts"
)

// defaultUserAgent is the fallback User-Agent when none is configured.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// AuthHeaders returns the three authentication headers: bearer authorization,
// csrf token and the recomposed cookie.
func (c Credentials) AuthHeaders() (map[string]string, error) {
	h := map[string]string{
		"authorization": "Bearer " + c.AuthorizationToken,
		"x-csrf-token":  c.CSRFToken,
		"cookie":        c.Cookie.String(),
	}
	for _, name := range []string{"authorization", "x-csrf-token", "cookie"} {
		if !httpguts.ValidHeaderFieldValue(h[name]) {
			return nil, &HeaderError{Header: name}
		}
	}
	return h, nil
}

// searchHeaders returns the full header set sent with each search request.
func searchHeaders(creds Credentials, userAgent string) (map[string]string, error) {
	auth, err := creds.AuthHeaders()
	if err != nil {
		return nil, err
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	h := map[string]string{
		"x-twitter-active-user":     "yes",
		"x-twitter-auth-type":       "OAuth2Session",
		"x-twitter-client-language": "en",
		"user-agent":                userAgent,
		"accept":                    "*/*",
		"accept-language":           "en-US,en;q=0.9",
		"accept-encoding":           "gzip, deflate, br",
		"referer":                   "https://twitter.com/search",
		"origin":                    "https://twitter.com",
		"sec-fetch-dest":            "empty",
		"sec-fetch-mode":            "cors",
		"sec-fetch-site":            "same-site",
	}
	if ch := stealth.ClientHintsHeaders(userAgent); ch != nil {
		for k, v := range ch {
			h[k] = v
		}
	}
	for k, v := range auth {
		h[k] = v
	}
	return h, nil
}

// searchHeaderOrder is the header order for TLS fingerprint consistency.
var searchHeaderOrder = []string{
	"authorization",
	"x-csrf-token",
	"x-twitter-active-user",
	"x-twitter-auth-type",
	"x-twitter-client-language",
	"sec-ch-ua",
	"sec-ch-ua-mobile",
	"sec-ch-ua-platform",
	"sec-fetch-dest",
	"sec-fetch-mode",
	"sec-fetch-site",
	"cookie",
	"user-agent",
	"accept",
	"accept-language",
	"accept-encoding",
	"referer",
	"origin",
}
