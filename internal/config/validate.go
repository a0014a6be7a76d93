package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tgifai/chatwidget/internal/consts"
)

const (
	defaultAPIBaseURL     = "http://localhost:8080/v1/api/n8n"
	defaultUploadURL      = "http://localhost:8080/api/attachments/upload"
	defaultClientTimeout  = 60
	defaultBind           = "127.0.0.1:8080"
	defaultAPIPrefix      = "/v1/api/n8n"
	defaultRequestTimeout = 30
	defaultMaxUploadMiB   = 20
)

// Default returns the config written by "chatwidget init".
func Default() *Config {
	cfg := &Config{
		Client: ClientConfig{
			APIBaseURL: defaultAPIBaseURL,
			ChatbotID:  "demo-bot",
			UploadURL:  defaultUploadURL,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
			File:   consts.DefaultLogFile(),
		},
	}
	_ = cfg.Validate()
	return cfg
}

// Validate .
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if err := c.Client.Validate(); err != nil {
		return fmt.Errorf("client: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Validate fills defaults and checks that the URLs are absolute http(s) URLs.
// An empty chatbot id is allowed here; commands that talk to the API check it.
func (c *ClientConfig) Validate() error {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if err := checkHTTPURL(c.APIBaseURL); err != nil {
		return fmt.Errorf("api_base_url: %w", err)
	}

	c.UploadURL = strings.TrimSpace(c.UploadURL)
	if c.UploadURL == "" {
		c.UploadURL = defaultUploadURL
	}
	if err := checkHTTPURL(c.UploadURL); err != nil {
		return fmt.Errorf("upload_url: %w", err)
	}

	c.ChatbotID = strings.TrimSpace(c.ChatbotID)
	c.SessionID = strings.TrimSpace(c.SessionID)
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = defaultClientTimeout
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	s.Bind = strings.TrimSpace(s.Bind)
	if s.Bind == "" {
		s.Bind = defaultBind
	}

	s.APIPrefix = "/" + strings.Trim(strings.TrimSpace(s.APIPrefix), "/")
	if s.APIPrefix == "/" {
		s.APIPrefix = defaultAPIPrefix
	}

	s.PublicURL = strings.TrimRight(strings.TrimSpace(s.PublicURL), "/")
	if s.PublicURL == "" {
		s.PublicURL = "http://" + s.Bind
	}
	if err := checkHTTPURL(s.PublicURL); err != nil {
		return fmt.Errorf("public_url: %w", err)
	}

	if s.RequestTimeout <= 0 {
		s.RequestTimeout = defaultRequestTimeout
	}
	if s.MaxUploadMiB <= 0 {
		s.MaxUploadMiB = defaultMaxUploadMiB
	}
	s.MetricsBind = strings.TrimSpace(s.MetricsBind)
	return nil
}

func (l *LoggingConfig) Validate() error {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if l.Level == "" {
		l.Level = "info"
	}
	switch l.Level {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("unsupported level %q", l.Level)
	}

	l.Output = strings.ToLower(strings.TrimSpace(l.Output))
	if l.Output == "" {
		l.Output = "stdout"
	}
	if (l.Output == "file" || l.Output == "both") && strings.TrimSpace(l.File) == "" {
		l.File = consts.DefaultLogFile()
	}
	return nil
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is required")
	}
	return nil
}
