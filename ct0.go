package twinicodo

import "strings"

// extractCT0FromHeaders parses ct0 value from a set-cookie response header.
func extractCT0FromHeaders(headers map[string]string) string {
	cookie := headers["set-cookie"]
	if cookie == "" {
		return ""
	}
	for _, part := range strings.Split(cookie, ";") {
		part = strings.TrimSpace(part)
		// set-cookie values may be folded: "a=1; Path=/, ct0=abc; Path=/"
		for _, sub := range strings.Split(part, ",") {
			sub = strings.TrimSpace(sub)
			if val, ok := strings.CutPrefix(sub, "ct0="); ok && val != "" {
				return val
			}
		}
	}
	return ""
}

// rotateCT0 applies a server-issued ct0 to the credentials. The csrf header follows
// the cookie when both carried the same token.
func rotateCT0(creds Credentials, ct0 string) Credentials {
	if creds.CSRFToken == creds.Cookie.CT0 {
		creds.CSRFToken = ct0
	}
	creds.Cookie.CT0 = ct0
	return creds
}
