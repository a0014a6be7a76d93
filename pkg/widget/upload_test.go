package widget

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFile_Success(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/attachments/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "bot-1", r.FormValue("chatbotId"))
		assert.Equal(t, "session-fixed", r.FormValue("sessionId"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "notes.txt", hdr.Filename)
		assert.Equal(t, "text/plain", hdr.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(f)
		assert.Equal(t, "raw bytes, not base64", string(raw))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"fileId":"f1"}`))
	})

	resp := c.UploadFile(context.Background(), "notes.txt", strings.NewReader("raw bytes, not base64"))
	assert.Equal(t, &Response{
		Success:           true,
		Result:            "f1",
		VectorAttachments: []any{map[string]any{"fileId": "f1"}},
	}, resp)
}

func TestUploadFile_Failure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"File is empty"}`))
	})

	resp := c.UploadFile(context.Background(), "a.txt", strings.NewReader(""))
	assert.Equal(t, &Response{Success: false, Error: "Upload failed: 400"}, resp)
}

func TestUploadFile_NilReader(t *testing.T) {
	c := New(Config{APIBaseURL: "http://example.test", ChatbotID: "bot", SessionID: "s"})
	resp := c.UploadFile(context.Background(), "a.txt", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, ErrNilReader.Error(), resp.Error)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestUploadFile_ReadError(t *testing.T) {
	c := New(Config{APIBaseURL: "http://example.test", ChatbotID: "bot", SessionID: "s"})
	resp := c.UploadFile(context.Background(), "a.txt", failingReader{})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "disk on fire")
}

func TestUploadFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"k":1}`), 0o644))

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "report.json", hdr.Filename)
		assert.Equal(t, "application/json", hdr.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"fileId":"f-report"}`))
	})

	resp := c.UploadFilePath(context.Background(), path)
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, "f-report", resp.Result)
}

func TestUploadFilePath_Missing(t *testing.T) {
	c := New(Config{APIBaseURL: "http://example.test", ChatbotID: "bot", SessionID: "s"})
	resp := c.UploadFilePath(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "open file")
}

func TestUploadFile_NonObjectReply(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["f1"]`))
	})

	resp := c.UploadFile(context.Background(), "a.txt", strings.NewReader("x"))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "decode upload response")
}

func TestUploadFile_LargeNumericFileID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"fileId":9007199254740993}`))
	})

	resp := c.UploadFile(context.Background(), "a.txt", strings.NewReader("x"))
	assert.Equal(t, &Response{
		Success:           true,
		Result:            "9007199254740993",
		VectorAttachments: []any{map[string]any{"fileId": json.Number("9007199254740993")}},
	}, resp)
}

func TestUploadFile_NullReply(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	resp := c.UploadFile(context.Background(), "a.txt", strings.NewReader("x"))
	assert.False(t, resp.Success)
	assert.Equal(t, "decode upload response: response body is null", resp.Error)
}
