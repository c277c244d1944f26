package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/HTYISABUG/tgbot-hydrate/src/keychain"
	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"golang.org/x/net/proxy"
)

// ErrNoToken is returned when no bot token is configured anywhere.
var ErrNoToken = errors.New("no bot token: set bot_token, TGBOT_TOKEN or run `token set`")

// Setting represents server settings. Every field can be overridden by its
// environment variable.
type Setting struct {
	// Host is the public https base URL of the webhook, e.g.
	// "https://bot.example.com". Leave it empty to long-poll instead.
	Host        string `json:"host" env:"TGBOT_HOST"`
	ListenAddr  string `json:"listen_addr" env:"TGBOT_LISTEN_ADDR"`
	WebhookPath string `json:"webhook_path" env:"TGBOT_WEBHOOK_PATH"`
	// WebhookSecret signs webhook requests. A random one is used when empty.
	WebhookSecret string `json:"webhook_secret" env:"TGBOT_WEBHOOK_SECRET"`
	CertFile      string `json:"ssl_cert" env:"TGBOT_SSL_CERT"`
	KeyFile       string `json:"ssl_key" env:"TGBOT_SSL_KEY"`

	BotToken    string `json:"bot_token" env:"TGBOT_TOKEN"`
	APIEndpoint string `json:"api_endpoint" env:"TGBOT_API_ENDPOINT"`
	// Proxy is a socks5:// URL the bot API is reached through.
	Proxy       string `json:"proxy" env:"TGBOT_PROXY"`
	PollTimeout int    `json:"poll_timeout" env:"TGBOT_POLL_TIMEOUT"`

	ApproveJoinRequests bool `json:"approve_join_requests" env:"TGBOT_APPROVE_JOIN_REQUESTS"`
}

// DefaultSetting returns the settings used for anything left unset.
func DefaultSetting() Setting {
	return Setting{
		ListenAddr:  ":8443",
		WebhookPath: "/tgbot",
		PollTimeout: 60,
	}
}

// LoadSetting reads the JSON settings at path on top of the defaults, then
// applies environment overrides. A missing file is not an error.
func LoadSetting(path string) (Setting, error) {
	s := DefaultSetting()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(b, &s); err != nil {
			return s, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return s, err
	}

	if err := env.Parse(&s); err != nil {
		return s, err
	}

	if s.WebhookSecret == "" {
		// Telegram only accepts A-Z, a-z, 0-9, _ and - here.
		s.WebhookSecret = strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	return s, nil
}

// Webhook reports whether updates are received through a webhook.
func (s Setting) Webhook() bool {
	return s.Host != ""
}

// WebhookURL returns the URL Telegram delivers updates to.
func (s Setting) WebhookURL() string {
	return strings.TrimRight(s.Host, "/") + s.WebhookPath
}

// Token returns the configured bot token, falling back to the system
// keychain.
func (s Setting) Token() (string, error) {
	if s.BotToken != "" {
		return s.BotToken, nil
	}

	token, err := keychain.Token()
	if err != nil {
		return "", fmt.Errorf("read keychain: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// HTTPClient returns the client used to reach the bot API.
func (s Setting) HTTPClient() (*http.Client, error) {
	if s.Proxy == "" {
		return &http.Client{}, nil
	}

	u, err := url.Parse(s.Proxy)
	if err != nil {
		return nil, fmt.Errorf("parse proxy: %w", err)
	}

	dialer, err := proxy.FromURL(u, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("proxy dialer: %w", err)
	}

	transport := &http.Transport{}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		transport.DialContext = cd.DialContext
	} else {
		transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		}
	}

	return &http.Client{Transport: transport}, nil
}
