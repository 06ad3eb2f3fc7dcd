package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/gorgia-chat/pkg/conversation"
	"github.com/rs/zerolog/log"
)

// ReplyMsg delivers the resolution of a submitted request to the UI loop.
type ReplyMsg struct {
	Outcome conversation.Outcome
}

// ControllerBackend turns controller requests into bubbletea commands.
// The call itself runs inside the command; the state change happens when
// the model receives the ReplyMsg.
type ControllerBackend struct {
	ctx  context.Context
	ctrl *conversation.Controller
}

func NewControllerBackend(ctx context.Context, ctrl *conversation.Controller) *ControllerBackend {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ControllerBackend{ctx: ctx, ctrl: ctrl}
}

func (b *ControllerBackend) Controller() *conversation.Controller { return b.ctrl }

// Submit starts a request for draft and returns the command that performs
// it, or nil when the controller rejected the draft.
func (b *ControllerBackend) Submit(draft string) tea.Cmd {
	req, ok := b.ctrl.Submit(draft)
	if !ok {
		return nil
	}
	ctx := b.ctx
	return func() tea.Msg {
		out := b.ctrl.Dispatch(ctx, req)
		log.Debug().Str("request_id", req.ID).Bool("failed", out.Err != nil).Msg("dispatch finished")
		return ReplyMsg{Outcome: out}
	}
}

// IsFinished reports whether no request is in flight.
func (b *ControllerBackend) IsFinished() bool {
	return !b.ctrl.Pending()
}
