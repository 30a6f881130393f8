package cli

import (
	"strings"

	"github.com/google/uuid"
)

// newSessionID matches the chat widget's "sess_<8 hex>" ids.
func newSessionID() string {
	return "sess_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
