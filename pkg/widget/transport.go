package widget

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	kflate "github.com/klauspost/compress/flate"
	kgzip "github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const acceptEncoding = "gzip, deflate, br, zstd"

// compressedTransport advertises gzip, deflate, br and zstd and decodes the
// response body before the client parses it.
type compressedTransport struct {
	base http.RoundTripper
}

// newCompressedTransport wraps base. A nil base means http.DefaultTransport.
// *http.Transport bases are cloned with DisableCompression so the standard
// library does not decode gzip ahead of us.
func newCompressedTransport(base http.RoundTripper) http.RoundTripper {
	switch t := base.(type) {
	case nil:
		clone := http.DefaultTransport.(*http.Transport).Clone()
		clone.DisableCompression = true
		base = clone
	case *http.Transport:
		clone := t.Clone()
		clone.DisableCompression = true
		base = clone
	}
	return &compressedTransport{base: base}
}

func (t *compressedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	var body io.ReadCloser
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "":
		return resp, nil
	case "gzip":
		r, err := kgzip.NewReader(resp.Body)
		if err != nil {
			return resp, nil
		}
		body = &decodedBody{Reader: r, closer: resp.Body}
	case "deflate":
		body = &decodedBody{Reader: kflate.NewReader(resp.Body), closer: resp.Body}
	case "br":
		body = &decodedBody{Reader: brotli.NewReader(resp.Body), closer: resp.Body}
	case "zstd":
		d, err := zstd.NewReader(resp.Body)
		if err != nil {
			return resp, nil
		}
		body = &zstdBody{decoder: d, raw: resp.Body}
	default:
		return resp, nil
	}

	resp.Body = body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}

type decodedBody struct {
	io.Reader
	closer io.Closer
}

func (b *decodedBody) Close() error {
	if c, ok := b.Reader.(io.Closer); ok {
		_ = c.Close()
	}
	return b.closer.Close()
}

type zstdBody struct {
	decoder *zstd.Decoder
	raw     io.Closer
}

func (b *zstdBody) Read(p []byte) (int, error) { return b.decoder.Read(p) }

func (b *zstdBody) Close() error {
	b.decoder.Close()
	return b.raw.Close()
}
