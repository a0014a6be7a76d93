package widget

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/andybalholm/brotli"
	kgzip "github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const envelopeBody = `{"success":true,"result":"compressed hello"}`

func encodeBody(t *testing.T, encoding string) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch encoding {
	case "gzip":
		w := kgzip.NewWriter(&buf)
		_, err := w.Write([]byte(envelopeBody))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case "br":
		w := brotli.NewWriter(&buf)
		_, err := w.Write([]byte(envelopeBody))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case "zstd":
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write([]byte(envelopeBody))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	default:
		t.Fatalf("unsupported encoding %s", encoding)
	}
	return buf.Bytes()
}

func TestCompressedTransport_Decodes(t *testing.T) {
	for _, enc := range []string{"gzip", "br", "zstd"} {
		t.Run(enc, func(t *testing.T) {
			payload := encodeBody(t, enc)
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, acceptEncoding, r.Header.Get("Accept-Encoding"))
				w.Header().Set("Content-Encoding", enc)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(payload)
			}, WithCompression())

			resp := c.SendMessage(context.Background(), ChatMessage{Message: "hello"})
			assert.Equal(t, &Response{Success: true, Result: "compressed hello"}, resp)
		})
	}
}

func TestCompressedTransport_PlainPassthrough(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(envelopeBody))
	}, WithCompression())

	resp := c.SendMessage(context.Background(), ChatMessage{Message: "hello"})
	assert.True(t, resp.Success)
}
