package widget

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ListAttachments fetches {APIBaseURL}/attachments/{chatbotId}. The JSON array
// the server returns is passed through in VectorAttachments.
func (c *Client) ListAttachments(ctx context.Context) (resp *Response) {
	o := c.begin(ctx, OpListAttachments, nil)
	defer o.recoverTo(&resp)

	raw, err := o.roundTrip(http.MethodGet, c.endpoint("attachments", c.chatbotID), nil, "")
	if err != nil {
		return o.fail(err)
	}

	var items []any
	if err := decoder.Unmarshal(raw, &items); err != nil {
		return o.fail(fmt.Errorf("decode attachment list: %w", err))
	}
	if items == nil {
		return o.fail(fmt.Errorf("decode attachment list: %w", errNullBody))
	}
	return o.succeed(&Response{Success: true, VectorAttachments: items})
}

// DeleteAttachment removes vectorID under the client's chatbot. The response
// body is ignored.
func (c *Client) DeleteAttachment(ctx context.Context, vectorID string) (resp *Response) {
	o := c.begin(ctx, OpDeleteAttachment, map[string]any{"vector_id": vectorID})
	defer o.recoverTo(&resp)

	if strings.TrimSpace(vectorID) == "" {
		return o.fail(ErrEmptyID)
	}

	if _, err := o.roundTrip(http.MethodDelete, c.endpoint("attachments", c.chatbotID, vectorID), nil, ""); err != nil {
		return o.fail(err)
	}
	return o.succeed(&Response{Success: true})
}
