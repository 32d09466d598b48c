package survey

import (
	"github.com/relcheck/relcheck/internal/insight"
	sess "github.com/relcheck/relcheck/internal/session"
)

// sessionLoadedMsg is sent when the session (and any saved progress) is ready.
type sessionLoadedMsg struct {
	Session *sess.Session
	Err     error
}

// insightMsg carries the result of an insight request.
type insightMsg struct {
	Insight *insight.Insight
	Err     error
}
