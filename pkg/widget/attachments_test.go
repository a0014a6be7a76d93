package widget

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListAttachments_Success(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/api/n8n/attachments/bot-1", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"a"}]`))
	})

	resp := c.ListAttachments(context.Background())
	assert.Equal(t, &Response{
		Success:           true,
		VectorAttachments: []any{map[string]any{"id": "a"}},
	}, resp)
}

func TestListAttachments_Empty(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	resp := c.ListAttachments(context.Background())
	assert.True(t, resp.Success)
	assert.Empty(t, resp.VectorAttachments)
}

func TestListAttachments_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resp := c.ListAttachments(context.Background())
	assert.Equal(t, &Response{Success: false, Error: "Failed to list attachments: 404"}, resp)
}

func TestListAttachments_NotAnArray(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"files":[]}`))
	})

	resp := c.ListAttachments(context.Background())
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "decode attachment list")
}

func TestDeleteAttachment_Success(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/api/n8n/attachments/bot-1/vec-9", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	resp := c.DeleteAttachment(context.Background(), "vec-9")
	assert.Equal(t, &Response{Success: true}, resp)
}

func TestDeleteAttachment_IgnoresBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	})

	resp := c.DeleteAttachment(context.Background(), "vec-9")
	assert.Equal(t, &Response{Success: true}, resp)
}

func TestDeleteAttachment_Failure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	resp := c.DeleteAttachment(context.Background(), "vec-9")
	assert.Equal(t, &Response{Success: false, Error: "Failed to delete attachment: 500"}, resp)
}

func TestDeleteAttachment_EmptyID(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	resp := c.DeleteAttachment(context.Background(), "  ")
	assert.False(t, resp.Success)
	assert.Equal(t, ErrEmptyID.Error(), resp.Error)
	assert.False(t, called)
}

func TestListAttachments_KeepsLargeNumbers(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":9007199254740993,"size":12}]`))
	})

	resp := c.ListAttachments(context.Background())
	assert.Equal(t, &Response{
		Success: true,
		VectorAttachments: []any{map[string]any{
			"id":   json.Number("9007199254740993"),
			"size": json.Number("12"),
		}},
	}, resp)
}

func TestListAttachments_NullBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	resp := c.ListAttachments(context.Background())
	assert.False(t, resp.Success)
	assert.Equal(t, "decode attachment list: response body is null", resp.Error)
}
