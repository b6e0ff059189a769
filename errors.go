package twinicodo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrAuthHeader reports a credential value that cannot be sent as an HTTP header.
	ErrAuthHeader = errors.New("invalid auth header value")
	// ErrCookieMissing reports a required cookie key absent from the raw cookie string.
	ErrCookieMissing = errors.New("cookie field missing")
	// ErrNetwork reports a transport failure or a non-success HTTP status.
	ErrNetwork = errors.New("network error")
	// ErrDecode reports a malformed search response or an unparseable tweet ID.
	ErrDecode = errors.New("decode error")
	// ErrNoMorePages is returned by SearchIterator.Next once the last page was yielded.
	ErrNoMorePages = errors.New("no more pages")
)

// HeaderError names the header whose value contains illegal characters.
type HeaderError struct {
	Header string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header %s: invalid value", e.Header)
}

func (e *HeaderError) Unwrap() error { return ErrAuthHeader }

// CookieError names the required cookie key that was not found.
type CookieError struct {
	Field string
}

func (e *CookieError) Error() string {
	return fmt.Sprintf("cookie %s missing", e.Field)
}

func (e *CookieError) Unwrap() error { return ErrCookieMissing }

// NetworkError carries the HTTP status (0 for transport failures) of a failed search request.
type NetworkError struct {
	Endpoint string
	Status   int
	Detail   string
	Err      error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s HTTP %d: %s", e.Endpoint, e.Status, e.Detail)
	default:
		return fmt.Sprintf("%s HTTP %d", e.Endpoint, e.Status)
	}
}

func (e *NetworkError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrNetwork, e.Err}
	}
	return []error{ErrNetwork}
}

// DecodeError wraps a JSON or tweet ID decoding failure.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.What, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// errorClass categorizes Twitter API error responses.
type errorClass int

const (
	errNone          errorClass = iota
	errBanned                   // 88: rate limit abuse
	errSuspended                // 64: account suspended
	errLocked                   // 326: account locked (captcha needed)
	errCSRF                     // 353: csrf token mismatch
	errAuthExpired              // 32: could not authenticate
	errBlocked                  // 161: blocked from performing action
	errNotAuthorized            // 179, 219: not authorized
	errInternal                 // 131: Twitter internal error
)

func (c errorClass) String() string {
	switch c {
	case errBanned:
		return "rate limit abuse (88)"
	case errSuspended:
		return "account suspended (64)"
	case errLocked:
		return "account locked (326)"
	case errCSRF:
		return "csrf token mismatch (353)"
	case errAuthExpired:
		return "could not authenticate (32)"
	case errBlocked:
		return "blocked (161)"
	case errNotAuthorized:
		return "not authorized"
	case errInternal:
		return "internal error (131)"
	}
	return ""
}

// classifyError inspects a response body for known Twitter error codes.
func classifyError(body []byte) errorClass {
	var errResp struct {
		Errors []struct {
			Code int `json:"code"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &errResp) != nil || len(errResp.Errors) == 0 {
		return errNone
	}

	for _, e := range errResp.Errors {
		switch e.Code {
		case 88:
			return errBanned
		case 64:
			return errSuspended
		case 326:
			return errLocked
		case 353:
			return errCSRF
		case 32:
			return errAuthExpired
		case 161:
			return errBlocked
		case 179, 219:
			return errNotAuthorized
		case 131:
			return errInternal
		}
	}
	return errNone
}

// parseRateLimitReset parses the X-Rate-Limit-Reset unix timestamp header.
// Falls back to 15 minutes from now if missing or invalid.
func parseRateLimitReset(v string) time.Time {
	if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(ts, 0)
	}
	return time.Now().Add(15 * time.Minute)
}

// statusError builds the NetworkError for a non-200 search response.
func statusError(endpoint string, status int, body []byte, headers map[string]string) *NetworkError {
	e := &NetworkError{Endpoint: endpoint, Status: status}
	switch {
	case status == 429:
		e.Detail = "rate limited until " + parseRateLimitReset(headers["x-rate-limit-reset"]).Format(time.RFC3339)
	case classifyError(body) != errNone:
		e.Detail = classifyError(body).String()
	default:
		e.Detail = truncateBytes(body, 200)
	}
	return e
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
