package twinicodo

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected errorClass
	}{
		{"no errors", `{"globalObjects":{}}`, errNone},
		{"empty errors", `{"errors":[]}`, errNone},
		{"banned 88", `{"errors":[{"code":88}]}`, errBanned},
		{"suspended 64", `{"errors":[{"code":64}]}`, errSuspended},
		{"locked 326", `{"errors":[{"code":326}]}`, errLocked},
		{"csrf 353", `{"errors":[{"code":353}]}`, errCSRF},
		{"auth expired 32", `{"errors":[{"code":32}]}`, errAuthExpired},
		{"blocked 161", `{"errors":[{"code":161}]}`, errBlocked},
		{"not authorized 179", `{"errors":[{"code":179}]}`, errNotAuthorized},
		{"not authorized 219", `{"errors":[{"code":219}]}`, errNotAuthorized},
		{"internal 131", `{"errors":[{"code":131}]}`, errInternal},
		{"unknown code", `{"errors":[{"code":999}]}`, errNone},
		{"invalid json", `{invalid`, errNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyError([]byte(tt.body))
			if result != tt.expected {
				t.Fatalf("classifyError(%s) = %d, want %d", tt.body, result, tt.expected)
			}
		})
	}
}

func TestParseRateLimitReset(t *testing.T) {
	result := parseRateLimitReset("")
	if time.Until(result) < 14*time.Minute {
		t.Fatal("expected ~15min fallback for empty input")
	}

	result = parseRateLimitReset("not-a-number")
	if time.Until(result) < 14*time.Minute {
		t.Fatal("expected ~15min fallback for invalid input")
	}

	result = parseRateLimitReset("1700000000")
	if result.Unix() != 1700000000 {
		t.Fatalf("expected unix 1700000000, got %d", result.Unix())
	}
}

func TestStatusError(t *testing.T) {
	e := statusError(adaptiveSearchEndpoint, 429, nil, map[string]string{"x-rate-limit-reset": "1700000000"})
	if e.Status != 429 || !strings.Contains(e.Detail, "rate limited until") {
		t.Fatalf("unexpected 429 error: %+v", e)
	}

	e = statusError(adaptiveSearchEndpoint, 403, []byte(`{"errors":[{"code":353}]}`), nil)
	if e.Detail != errCSRF.String() {
		t.Fatalf("expected csrf detail, got %q", e.Detail)
	}

	e = statusError(adaptiveSearchEndpoint, 500, []byte(strings.Repeat("x", 300)), nil)
	if len(e.Detail) != 203 {
		t.Fatalf("expected truncated body, got %d bytes", len(e.Detail))
	}
	if !errors.Is(e, ErrNetwork) {
		t.Fatal("status error should match ErrNetwork")
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"header", &HeaderError{Header: "cookie"}, ErrAuthHeader},
		{"cookie", &CookieError{Field: "ct0"}, ErrCookieMissing},
		{"network", &NetworkError{Endpoint: "x", Err: cause}, ErrNetwork},
		{"network cause", &NetworkError{Endpoint: "x", Err: cause}, cause},
		{"decode", &DecodeError{What: "x", Err: cause}, ErrDecode},
		{"decode cause", &DecodeError{What: "x", Err: cause}, cause},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Fatalf("%v does not match %v", tt.err, tt.sentinel)
			}
		})
	}
}
