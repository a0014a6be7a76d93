package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/gg/gconv"
)

// UploadFile sends the content of r as the multipart field "file", together
// with chatbotId and sessionId, to the upload endpoint. The payload travels as
// raw bytes. On success Result holds the server-assigned fileId and
// VectorAttachments holds the decoded server reply.
func (c *Client) UploadFile(ctx context.Context, name string, r io.Reader) *Response {
	return c.upload(ctx, name, func() (io.ReadCloser, error) {
		if r == nil {
			return nil, ErrNilReader
		}
		return io.NopCloser(r), nil
	})
}

// UploadFilePath opens path, uploads it and closes it before returning.
func (c *Client) UploadFilePath(ctx context.Context, path string) *Response {
	return c.upload(ctx, filepath.Base(path), func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return f, nil
	})
}

func (c *Client) upload(ctx context.Context, name string, open func() (io.ReadCloser, error)) (resp *Response) {
	o := c.begin(ctx, OpUploadFile, map[string]any{"file": name})
	defer o.recoverTo(&resp)

	rc, err := open()
	if err != nil {
		return o.fail(err)
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return o.fail(fmt.Errorf("read file: %w", err))
	}

	body, contentType, err := c.uploadForm(name, data)
	if err != nil {
		return o.fail(fmt.Errorf("build upload form: %w", err))
	}

	raw, err := o.roundTrip(http.MethodPost, c.uploadURL, body, contentType)
	if err != nil {
		return o.fail(err)
	}

	var reply map[string]any
	if err := decoder.Unmarshal(raw, &reply); err != nil {
		return o.fail(fmt.Errorf("decode upload response: %w", err))
	}
	if reply == nil {
		return o.fail(fmt.Errorf("decode upload response: %w", errNullBody))
	}

	return o.succeed(&Response{
		Success:           true,
		Result:            fileIDOf(reply["fileId"]),
		VectorAttachments: []any{reply},
	})
}

func fileIDOf(v any) string {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return gconv.To[string](v)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (c *Client) uploadForm(name string, data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	header.Set("Content-Type", detectMIME(name, data))
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}

	if err := mw.WriteField("chatbotId", c.chatbotID); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("sessionId", c.sessionID); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
