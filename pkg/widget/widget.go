// Package widget is a client for the chatbot widget API: it sends chat
// messages with inline attachments and manages uploaded attachments.
//
// Every operation returns a *Response envelope and never an error; transport,
// status and decoding failures are reported through Response.Error.
//
//	c := widget.New(widget.Config{
//		APIBaseURL: "http://localhost:8080/v1/api/n8n",
//		ChatbotID:  "bot-1",
//	})
//	resp := c.SendMessage(ctx, widget.ChatMessage{Message: "hello"})
//	if !resp.Success {
//		log.Println(resp.Error)
//	}
package widget

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultUploadURL is where UploadFile posts unless WithUploadURL overrides it.
	// It is not derived from APIBaseURL.
	DefaultUploadURL = "http://localhost:8080/api/attachments/upload"

	defaultTimeout = 60 * time.Second
	userAgent      = "chatwidget-go/1.0"
)

// Config is the session identity of a Client. It is fixed at construction.
type Config struct {
	APIBaseURL string
	ChatbotID  string
	// SessionID is generated with NewSessionID when empty.
	SessionID string
}

// Client is safe for concurrent use.
type Client struct {
	apiBaseURL string
	chatbotID  string
	sessionID  string
	uploadURL  string

	httpClient *http.Client
	observer   Observer
}

type options struct {
	httpClient  *http.Client
	timeout     time.Duration
	uploadURL   string
	observer    Observer
	compression bool
}

// Option customizes a Client built by New.
type Option func(*options)

// WithHTTPClient replaces the underlying *http.Client. The client is not mutated.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
// It is ignored when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithUploadURL replaces DefaultUploadURL as the UploadFile target.
func WithUploadURL(u string) Option {
	return func(o *options) { o.uploadURL = u }
}

// WithObserver installs obs to receive operation events. The default is NopObserver.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithCompression negotiates gzip, deflate, br and zstd response encodings.
func WithCompression() Option {
	return func(o *options) { o.compression = true }
}

// New returns a Client for cfg, generating a session id when cfg.SessionID is empty.
func New(cfg Config, opts ...Option) *Client {
	o := &options{
		timeout:   defaultTimeout,
		uploadURL: DefaultUploadURL,
	}
	for _, opt := range opts {
		opt(o)
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}
	if o.compression {
		cloned := *hc
		cloned.Transport = newCompressedTransport(hc.Transport)
		hc = &cloned
	}

	observer := o.observer
	if observer == nil {
		observer = NopObserver()
	}

	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	return &Client{
		apiBaseURL: cfg.APIBaseURL,
		chatbotID:  cfg.ChatbotID,
		sessionID:  sessionID,
		uploadURL:  o.uploadURL,
		httpClient: hc,
		observer:   observer,
	}
}

func (c *Client) SessionID() string { return c.sessionID }

func (c *Client) ChatbotID() string { return c.chatbotID }

// endpoint joins escaped path segments onto the API base URL.
func (c *Client) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(c.apiBaseURL, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
