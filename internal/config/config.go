// Package config persists the search credentials between runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/anatolykoptev/go-kit/env"

	twinicodo "github.com/anatolykoptev/go-twinicodo"
)

const appName = "twinicodo"

// Config is the on-disk credential store.
type Config struct {
	AuthorizationToken string `toml:"authorization_token"`
	CSRFToken          string `toml:"csrf_token"`
	CookieAuthToken    string `toml:"cookie_auth_token"`
	CookieTwitterSess  string `toml:"cookie_twitter_sess"`
	CookieCT0          string `toml:"cookie_ct0"`
	Proxy              string `toml:"proxy,omitempty"`
	Init               bool   `toml:"init"`
}

// DefaultPath returns TWINICODO_CONFIG, or config.toml under the user config directory.
func DefaultPath() (string, error) {
	if p := env.Str("TWINICODO_CONFIG", ""); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load reads the config at path. A missing file yields an empty, uninitialised Config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Store writes the config to path, readable by the owner only.
func (c *Config) Store(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// FromCookie builds an initialised Config from the bearer token, csrf token and a
// raw cookie header.
func FromCookie(authorizationToken, csrfToken, cookie string) (*Config, error) {
	ck, err := twinicodo.ParseCookie(cookie)
	if err != nil {
		return nil, err
	}
	return &Config{
		AuthorizationToken: authorizationToken,
		CSRFToken:          csrfToken,
		CookieAuthToken:    ck.AuthToken,
		CookieTwitterSess:  ck.TwitterSess,
		CookieCT0:          ck.CT0,
		Init:               true,
	}, nil
}

// ApplyEnv overrides stored values with TWINICODO_* environment variables.
func (c *Config) ApplyEnv() error {
	c.AuthorizationToken = env.Str("TWINICODO_BEARER_TOKEN", c.AuthorizationToken)
	c.CSRFToken = env.Str("TWINICODO_CSRF_TOKEN", c.CSRFToken)
	c.Proxy = env.Str("TWINICODO_PROXY", c.Proxy)
	if raw := env.Str("TWINICODO_COOKIE", ""); raw != "" {
		ck, err := twinicodo.ParseCookie(raw)
		if err != nil {
			return fmt.Errorf("TWINICODO_COOKIE: %w", err)
		}
		c.SetCookie(ck)
	}
	if c.Valid() {
		c.Init = true
	}
	return nil
}

// Valid reports whether all five credential values are present.
func (c *Config) Valid() bool {
	return c.Credentials().Validate() == nil
}

// SetCookie replaces the three cookie fields.
func (c *Config) SetCookie(ck twinicodo.Cookie) {
	c.CookieAuthToken = ck.AuthToken
	c.CookieTwitterSess = ck.TwitterSess
	c.CookieCT0 = ck.CT0
}

// Credentials returns the stored values as a search credential bundle.
func (c *Config) Credentials() twinicodo.Credentials {
	return twinicodo.Credentials{
		AuthorizationToken: c.AuthorizationToken,
		CSRFToken:          c.CSRFToken,
		Cookie: twinicodo.Cookie{
			AuthToken:   c.CookieAuthToken,
			TwitterSess: c.CookieTwitterSess,
			CT0:         c.CookieCT0,
		},
	}
}
