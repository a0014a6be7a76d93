package config

import "time"

type (
	Config struct {
		Client  ClientConfig  `yaml:"client"`
		Server  ServerConfig  `yaml:"server"`
		Logging LoggingConfig `yaml:"logging"`
	}

	// ClientConfig drives the widget client used by the CLI commands.
	ClientConfig struct {
		APIBaseURL  string `yaml:"api_base_url" env:"CHATWIDGET_API_BASE_URL"`
		ChatbotID   string `yaml:"chatbot_id" env:"CHATWIDGET_CHATBOT_ID"`
		SessionID   string `yaml:"session_id,omitempty" env:"CHATWIDGET_SESSION_ID"`
		UploadURL   string `yaml:"upload_url" env:"CHATWIDGET_UPLOAD_URL"`
		TimeoutSec  int    `yaml:"timeout_sec" env:"CHATWIDGET_TIMEOUT_SEC"`
		Compression bool   `yaml:"compression" env:"CHATWIDGET_COMPRESSION"`
	}

	// ServerConfig drives the local dev backend started by "chatwidget serve".
	ServerConfig struct {
		Bind           string `yaml:"bind"`
		APIPrefix      string `yaml:"api_prefix"`
		PublicURL      string `yaml:"public_url"`
		RequestTimeout int    `yaml:"request_timeout"`
		MetricsBind    string `yaml:"metrics_bind"`
		MaxUploadMiB   int    `yaml:"max_upload_mib"`
	}

	LoggingConfig struct {
		Level      string `yaml:"level"`  // debug, info, warn, error
		Format     string `yaml:"format"` // json, text
		Output     string `yaml:"output"` // stdout, stderr, file, both
		File       string `yaml:"file"`
		MaxSize    int    `yaml:"max_size"` // MB
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"` // days
	}
)

func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}
