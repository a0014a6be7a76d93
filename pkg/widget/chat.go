package widget

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/gg/gslice"
	"github.com/bytedance/sonic"

	"github.com/tgifai/chatwidget/internal/pkg/utils"
)

// SendMessage posts msg with the client's chatbot and session ids to
// {APIBaseURL}/anonymous/chat. A 2xx body is returned as decoded, since the
// server already answers in the envelope shape.
func (c *Client) SendMessage(ctx context.Context, msg ChatMessage) (resp *Response) {
	o := c.begin(ctx, OpSendMessage, map[string]any{
		"files":   gslice.Map(msg.Attachments, func(a Attachment) string { return a.Name }),
		"preview": utils.Truncate80(msg.Message),
	})
	defer o.recoverTo(&resp)

	attachments := msg.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	body, err := sonic.Marshal(chatRequest{
		Message:     msg.Message,
		ChatbotID:   c.chatbotID,
		SessionID:   c.sessionID,
		Attachments: attachments,
	})
	if err != nil {
		return o.fail(fmt.Errorf("encode chat request: %w", err))
	}

	raw, err := o.roundTrip(http.MethodPost, c.endpoint("anonymous", "chat"), bytes.NewReader(body), "application/json")
	if err != nil {
		return o.fail(err)
	}

	var out *Response
	if err := decoder.Unmarshal(raw, &out); err != nil {
		return o.fail(fmt.Errorf("decode chat response: %w", err))
	}
	if out == nil {
		return o.fail(fmt.Errorf("decode chat response: %w", errNullBody))
	}
	return o.succeed(out)
}
