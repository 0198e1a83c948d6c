package dispatch

import (
	"github.com/sndctrl/osc"
	"github.com/sndctrl/osc/pattern"
)

// Handler receives a dispatched message. kind records whether the
// registered method's address matched the message's pattern exactly
// (pattern.Full) or as a container prefix (pattern.Container). enclosing is
// the timetag of the bundle that carried the message, or nil if it arrived
// as a standalone packet.
type Handler func(msg *osc.Message, kind pattern.MatchKind, enclosing *osc.TimeTag)

// Method is a handler registered at a fully qualified address. Address must
// contain no wildcard characters (see pattern.Validate); Register rejects
// it otherwise.
//
// RequiredArguments, when non-nil, filters dispatch: a message is only
// delivered to this method if its argument list satisfies the pattern (see
// osc.Matches). A nil RequiredArguments accepts any argument list; an
// explicit empty slice accepts only a message with no arguments.
type Method struct {
	Address           string
	RequiredArguments []osc.ArgumentTypeTag
	Handler           Handler
}

func (m *Method) accepts(msg *osc.Message) bool {
	if m.RequiredArguments == nil {
		return true
	}
	return osc.Matches(msg.Arguments, m.RequiredArguments)
}
