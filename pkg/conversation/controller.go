package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sender performs the outbound call for one submitted draft.
type Sender interface {
	Send(ctx context.Context, text string) (chat.Reply, error)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, text string) (chat.Reply, error)

func (f SenderFunc) Send(ctx context.Context, text string) (chat.Reply, error) { return f(ctx, text) }

// Outcome is the single resolution of a Request: exactly one of Reply or Err is set.
type Outcome struct {
	Request Request
	Reply   chat.Reply
	Err     error
	Elapsed time.Duration
}

// Controller owns a conversation State and the Sender used to resolve
// submissions. Submit and Settle are the only state changes; Dispatch
// performs the call and may run on any goroutine.
type Controller struct {
	mu     sync.Mutex
	state  State
	sender Sender
	logger zerolog.Logger
}

type ControllerOption func(*Controller)

func WithGreeting(greeting string) ControllerOption {
	return func(c *Controller) {
		c.state = NewState(greeting)
	}
}

func WithControllerLogger(l zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = l
	}
}

func NewController(sender Sender, options ...ControllerOption) (*Controller, error) {
	if sender == nil {
		return nil, errors.New("no sender provided to conversation controller")
	}
	c := &Controller{
		sender: sender,
		logger: log.Logger.With().Str("component", "conversation").Logger(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Log = append([]chat.Message(nil), c.state.Log...)
	return s
}

func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Pending
}

func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.SetDraft(text)
}

// Submit starts a request for draft. It returns ok=false and leaves the
// log untouched for blank drafts and while another request is pending.
func (c *Controller) Submit(draft string) (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, req, ok := c.state.Submit(draft)
	if !ok {
		c.logger.Debug().Bool("pending", c.state.Pending).Msg("submit rejected")
		return Request{}, false
	}
	c.state = next
	c.logger.Info().Str("request_id", req.ID).Int("length", len(req.Text)).Msg("submitting message")
	return req, true
}

// Dispatch performs the outbound call for req. It does not touch the state.
func (c *Controller) Dispatch(ctx context.Context, req Request) Outcome {
	start := time.Now()
	reply, err := c.sender.Send(ctx, req.Text)
	out := Outcome{Request: req, Elapsed: time.Since(start)}
	if err != nil {
		out.Err = err
		return out
	}
	out.Reply = reply
	return out
}

// Settle appends the bot message for out and clears the pending flag.
func (c *Controller) Settle(out Outcome) chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	logger := c.logger.With().Str("request_id", out.Request.ID).Dur("elapsed", out.Elapsed).Logger()
	if out.Err != nil {
		logger.Warn().Err(out.Err).Msg("request failed")
		c.state = c.state.Fail(out.Err)
	} else {
		logger.Info().Str("reply", replyKind(out.Reply)).Msg("request resolved")
		c.state = c.state.Resolve(out.Reply)
	}
	last, _ := c.state.Last()
	return last
}

// Exchange is Submit, Dispatch and Settle in one blocking call.
// It returns false when the draft was rejected.
func (c *Controller) Exchange(ctx context.Context, draft string) (chat.Message, bool) {
	req, ok := c.Submit(draft)
	if !ok {
		return chat.Message{}, false
	}
	return c.Settle(c.Dispatch(ctx, req)), true
}

func replyKind(r chat.Reply) string {
	switch r.(type) {
	case chat.ServerError:
		return "server-error"
	case chat.ProductListReply:
		return "product-list"
	case chat.TextReply:
		return "text"
	case chat.RawReply:
		return "raw"
	default:
		return "unknown"
	}
}
