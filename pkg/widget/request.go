package widget

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/tgifai/chatwidget/internal/pkg/logs"
)

// HeaderLogID carries the caller's log id so both sides of a request can be
// correlated in logs.
const HeaderLogID = "X-Log-Id"

const (
	maxBodyMiB   = 10
	maxDrainSize = 64 * 1024
)

// decoder keeps JSON numbers as json.Number so ids beyond 2^53 pass through intact.
var decoder = sonic.Config{UseNumber: true}.Froze()

// operation tracks one public call from start to envelope.
type operation struct {
	c      *Client
	ctx    context.Context
	op     Op
	start  time.Time
	fields map[string]any

	method string
	url    string
	status int
}

func (c *Client) begin(ctx context.Context, op Op, fields map[string]any) *operation {
	if ctx == nil {
		ctx = context.Background()
	}
	o := &operation{
		c:      c,
		ctx:    logs.EnsureLogID(ctx),
		op:     op,
		start:  time.Now(),
		fields: fields,
	}
	o.emit(StageStart, nil)
	return o
}

func (o *operation) emit(stage Stage, err error) {
	ev := Event{
		Op:         o.op,
		Stage:      stage,
		ChatbotID:  o.c.chatbotID,
		SessionID:  o.c.sessionID,
		Method:     o.method,
		URL:        o.url,
		StatusCode: o.status,
		Err:        err,
		Fields:     o.fields,
	}
	if stage != StageStart {
		ev.Duration = time.Since(o.start)
	}

	defer func() {
		if r := recover(); r != nil {
			logs.CtxWarn(o.ctx, "[widget:%s] observer panicked on %s: %v", o.op, stage, r)
		}
	}()
	o.c.observer.Observe(o.ctx, ev)
}

func (o *operation) succeed(resp *Response) *Response {
	o.emit(StageSuccess, nil)
	return resp
}

func (o *operation) fail(err error) *Response {
	o.emit(StageFailure, err)
	return failure(err)
}

// recoverTo must be deferred directly. It turns a panic raised inside the
// operation into a failure envelope.
func (o *operation) recoverTo(resp **Response) {
	if r := recover(); r != nil {
		*resp = o.fail(fmt.Errorf("%s: unexpected panic: %v", o.op, r))
	}
}

// roundTrip performs the request and returns the body of a 2xx response.
// Non-2xx statuses yield *StatusError.
func (o *operation) roundTrip(method, target string, body io.Reader, contentType string) ([]byte, error) {
	o.method, o.url = method, target

	req, err := http.NewRequestWithContext(o.ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if logID := logs.GetLogID(o.ctx); logID != "" {
		req.Header.Set(HeaderLogID, logID)
	}

	resp, err := o.c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	o.status = resp.StatusCode
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainSize))
		return nil, &StatusError{Op: o.op, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyMiB*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return raw, nil
}
