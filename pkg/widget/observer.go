package widget

import (
	"context"
	"time"

	"github.com/tgifai/chatwidget/internal/consts"
	"github.com/tgifai/chatwidget/internal/pkg/logs"
)

// Op names a Client operation.
type Op string

const (
	OpSendMessage      Op = "send_message"
	OpUploadFile       Op = "upload_file"
	OpListAttachments  Op = "list_attachments"
	OpDeleteAttachment Op = "delete_attachment"
)

// Stage marks where in an operation an Event was emitted.
type Stage string

const (
	StageStart   Stage = "start"
	StageSuccess Stage = "success"
	StageFailure Stage = "failure"
)

// Event is a structured diagnostic emitted by the Client.
type Event struct {
	Op        Op
	Stage     Stage
	ChatbotID string
	SessionID string

	Method     string
	URL        string
	StatusCode int
	Duration   time.Duration
	Err        error

	// Fields carries op-specific details such as the attachment count or file name.
	Fields map[string]any
}

// Observer receives client events. Implementations must be safe for concurrent use.
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) Observe(ctx context.Context, ev Event) { f(ctx, ev) }

type nopObserver struct{}

func (nopObserver) Observe(context.Context, Event) {}

// NopObserver discards every event.
func NopObserver() Observer { return nopObserver{} }

type multiObserver []Observer

func (m multiObserver) Observe(ctx context.Context, ev Event) {
	for _, o := range m {
		o.Observe(ctx, ev)
	}
}

// MultiObserver fans every event out to each non-nil observer in order.
func MultiObserver(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return NopObserver()
	}
	return out
}

type logObserver struct{}

// LogObserver writes events through the module logger.
func LogObserver() Observer { return logObserver{} }

func (logObserver) Observe(ctx context.Context, ev Event) {
	ctx = context.WithValue(ctx, consts.CtxKeyChatbotID, ev.ChatbotID)
	ctx = context.WithValue(ctx, consts.CtxKeySessionID, ev.SessionID)

	switch ev.Stage {
	case StageStart:
		logs.CtxDebug(ctx, "[widget:%s] start %v", ev.Op, ev.Fields)
	case StageSuccess:
		logs.CtxInfo(ctx, "[widget:%s] %s %s -> %d in %s", ev.Op, ev.Method, ev.URL, ev.StatusCode, ev.Duration)
	case StageFailure:
		logs.CtxError(ctx, "[widget:%s] %s %s failed after %s: %v", ev.Op, ev.Method, ev.URL, ev.Duration, ev.Err)
	}
}
