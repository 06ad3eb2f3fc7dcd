package runtime

import (
	"context"
	"io"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/go-go-golems/gorgia-chat/pkg/config"
	"github.com/go-go-golems/gorgia-chat/pkg/conversation"
	"github.com/go-go-golems/gorgia-chat/pkg/ui"
	"github.com/pkg/errors"
)

// ChatBuilder wires the HTTP client, the conversation controller and the
// UI for both the full-screen program and the line-mode session.
type ChatBuilder struct {
	ctx            context.Context
	settings       config.Settings
	sender         conversation.Sender
	httpClient     *http.Client
	programOptions []tea.ProgramOption
	modelOptions   ui.Options
}

// NewChatBuilder returns a new builder with defaults.
func NewChatBuilder(settings config.Settings) *ChatBuilder {
	return &ChatBuilder{
		ctx:      context.Background(),
		settings: settings,
	}
}

func (b *ChatBuilder) WithContext(ctx context.Context) *ChatBuilder {
	if ctx != nil {
		b.ctx = ctx
	}
	return b
}

// WithSender bypasses the HTTP client, mostly for tests.
func (b *ChatBuilder) WithSender(s conversation.Sender) *ChatBuilder {
	b.sender = s
	return b
}

func (b *ChatBuilder) WithHTTPClient(c *http.Client) *ChatBuilder {
	b.httpClient = c
	return b
}

func (b *ChatBuilder) WithProgramOptions(opts ...tea.ProgramOption) *ChatBuilder {
	b.programOptions = append(b.programOptions, opts...)
	return b
}

func (b *ChatBuilder) WithModelOptions(opts ui.Options) *ChatBuilder {
	b.modelOptions = opts
	return b
}

// BuildController creates the controller, opening the log with the configured greeting.
func (b *ChatBuilder) BuildController() (*conversation.Controller, error) {
	sender := b.sender
	if sender == nil {
		opts := []chat.HTTPClientOption{}
		if b.httpClient != nil {
			opts = append(opts, chat.WithHTTPClient(b.httpClient))
		}
		opts = append(opts, chat.WithTimeout(b.settings.Timeout))
		client, err := chat.NewHTTPClient(b.settings.Endpoint, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "create chat client")
		}
		sender = client
	}
	return conversation.NewController(sender, conversation.WithGreeting(b.settings.Greeting))
}

func (b *ChatBuilder) options() ui.Options {
	opts := b.modelOptions
	if opts.PlaceholderImage == "" {
		opts.PlaceholderImage = b.settings.PlaceholderImage
	}
	if opts.Text == nil && b.settings.Markdown {
		opts.Text = ui.NewMarkdownRenderer("dark")
	}
	if opts.Prober == nil && b.settings.ProbeImages {
		opts.Prober = chat.NewImageProber(b.httpClient)
	}
	return opts
}

// BuildModel returns the bubbletea model without starting a program.
func (b *ChatBuilder) BuildModel() (ui.Model, error) {
	ctrl, err := b.BuildController()
	if err != nil {
		return ui.Model{}, err
	}
	backend := ui.NewControllerBackend(b.ctx, ctrl)
	return ui.NewModel(backend, b.options()), nil
}

// BuildProgram returns a ready-to-run full-screen program.
func (b *ChatBuilder) BuildProgram() (*tea.Program, error) {
	model, err := b.BuildModel()
	if err != nil {
		return nil, err
	}
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(b.ctx)}, b.programOptions...)
	return tea.NewProgram(model, opts...), nil
}

// BuildPlainSession returns a line-mode session reading in and writing out.
func (b *ChatBuilder) BuildPlainSession(in io.Reader, out io.Writer) (*ui.PlainSession, error) {
	ctrl, err := b.BuildController()
	if err != nil {
		return nil, err
	}
	opts := b.options()
	// glamour output is meant for a terminal
	opts.Text = nil
	return ui.NewPlainSession(ctrl, in, out, opts), nil
}
