package conversation

import (
	"strings"

	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/google/uuid"
)

// State is the conversation as seen by the UI. Transitions return a new
// State and never mutate the receiver's log.
type State struct {
	Log     []chat.Message
	Draft   string
	Pending bool
}

// Request is one outbound call produced by a successful Submit.
type Request struct {
	ID   string
	Text string
}

// NewState returns an idle state. A non-empty greeting opens the log as a system message.
func NewState(greeting string) State {
	s := State{}
	if greeting != "" {
		s.Log = []chat.Message{chat.NewMessage(chat.RoleSystem, greeting)}
	}
	return s
}

func (s State) SetDraft(text string) State {
	s.Draft = text
	return s
}

// CanSubmit reports whether Submit(draft) would start a request.
func (s State) CanSubmit(draft string) bool {
	return !s.Pending && strings.TrimSpace(draft) != ""
}

// Submit appends the raw draft as a user message, clears the draft and
// marks the state pending. It is rejected (ok=false, state unchanged) for
// a blank draft or while a request is pending.
func (s State) Submit(draft string) (State, Request, bool) {
	if !s.CanSubmit(draft) {
		return s, Request{}, false
	}
	s.Log = appendMessage(s.Log, chat.NewMessage(chat.RoleUser, draft))
	s.Draft = ""
	s.Pending = true
	return s, Request{ID: uuid.NewString(), Text: draft}, true
}

// Resolve settles the pending request with a decoded reply.
func (s State) Resolve(reply chat.Reply) State {
	if !s.Pending {
		return s
	}
	var msg chat.Message
	if reply == nil {
		msg = chat.RawReply{Text: "undefined"}.Message()
	} else {
		msg = reply.Message()
	}
	s.Log = appendMessage(s.Log, msg)
	s.Pending = false
	return s
}

// Fail settles the pending request with a transport failure.
func (s State) Fail(err error) State {
	if !s.Pending {
		return s
	}
	s.Log = appendMessage(s.Log, chat.NewMessage(chat.RoleBot, FailureText(err)))
	s.Pending = false
	return s
}

// FailureText is the bot text shown for a failed call.
func FailureText(err error) string {
	desc := "unknown error"
	if err != nil {
		desc = err.Error()
	}
	return "Error: " + desc
}

// Last returns the most recent message, if any.
func (s State) Last() (chat.Message, bool) {
	if len(s.Log) == 0 {
		return chat.Message{}, false
	}
	return s.Log[len(s.Log)-1], true
}

func appendMessage(log []chat.Message, m chat.Message) []chat.Message {
	out := make([]chat.Message, len(log), len(log)+1)
	copy(out, log)
	return append(out, m)
}
