package widget

import (
	"fmt"
	"time"

	"github.com/tgifai/chatwidget/internal/pkg/utils"
)

const (
	sessionPrefix    = "session_"
	sessionSuffixLen = 9
)

// NewSessionID returns "session_<unix millis>_<9 random base36 chars>".
// It is a correlation token, not a credential.
func NewSessionID() string {
	return fmt.Sprintf("%s%d_%s", sessionPrefix, time.Now().UnixMilli(), utils.RandBase36(sessionSuffixLen))
}
