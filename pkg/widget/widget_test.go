package widget

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithUploadURL(srv.URL + "/api/attachments/upload")}, opts...)
	c := New(Config{
		APIBaseURL: srv.URL + "/v1/api/n8n",
		ChatbotID:  "bot-1",
		SessionID:  "session-fixed",
	}, opts...)
	return c, srv
}

func TestNew_Accessors(t *testing.T) {
	c := New(Config{APIBaseURL: "http://example.test", ChatbotID: "bot-7", SessionID: "s-1"})
	for i := 0; i < 3; i++ {
		assert.Equal(t, "bot-7", c.ChatbotID())
		assert.Equal(t, "s-1", c.SessionID())
	}
}

func TestNew_GeneratesSessionID(t *testing.T) {
	c := New(Config{APIBaseURL: "http://example.test", ChatbotID: "bot-7"})
	sid := c.SessionID()
	require.NotEmpty(t, sid)
	assert.True(t, strings.HasPrefix(sid, "session_"), "got %s", sid)
	assert.Equal(t, sid, c.SessionID(), "session id must be stable across calls")
}

func TestNewSessionID_Collisions(t *testing.T) {
	const n = 2000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		seen[New(Config{ChatbotID: "bot"}).SessionID()] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestNewSessionID_Format(t *testing.T) {
	parts := strings.Split(NewSessionID(), "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "session", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.Len(t, parts[2], sessionSuffixLen)
}

func TestClient_Endpoint(t *testing.T) {
	c := New(Config{APIBaseURL: "http://example.test/api/", ChatbotID: "bot 1", SessionID: "s"})
	assert.Equal(t, "http://example.test/api/anonymous/chat", c.endpoint("anonymous", "chat"))
	assert.Equal(t, "http://example.test/api/attachments/bot%201/a%2Fb", c.endpoint("attachments", c.ChatbotID(), "a/b"))
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{APIBaseURL: "http://example.test", ChatbotID: "bot"})
	assert.Equal(t, DefaultUploadURL, c.uploadURL)
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	assert.IsType(t, nopObserver{}, c.observer)
}

func TestNew_WithHTTPClientIsNotMutated(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	c := New(Config{ChatbotID: "bot"}, WithHTTPClient(hc), WithCompression())
	assert.Nil(t, hc.Transport)
	assert.NotSame(t, hc, c.httpClient)
	assert.IsType(t, &compressedTransport{}, c.httpClient.Transport)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
}

func TestClient_ConcurrentCalls(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"result":"ok"}`))
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := c.SendMessage(context.Background(), ChatMessage{Message: "hi"})
			assert.True(t, resp.Success)
		}()
	}
	wg.Wait()
	assert.Equal(t, "session-fixed", c.SessionID())
}
