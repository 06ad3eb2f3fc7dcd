package ui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/gorgia-chat/pkg/carousel"
	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/go-go-golems/gorgia-chat/pkg/conversation"
	"github.com/rs/zerolog/log"
)

const (
	Title       = "Gorgia ჩატბოტი"
	Subtitle    = "24/7 ონლაინ დახმარება"
	Placeholder = "დაწერეთ თქვენი შეკითხვა..."
)

// ImageProber reports whether an image URL can be loaded.
type ImageProber interface {
	Probe(ctx context.Context, url string) error
}

type Options struct {
	Text             TextRenderer
	Prober           ImageProber
	PlaceholderImage string
	// CopyToClipboard defaults to the system clipboard.
	CopyToClipboard func(string) error
}

type imageProbeMsg struct {
	messageID string
	index     int
	err       error
}

type clipboardMsg struct {
	url string
	err error
}

// Model is the full-screen chat: header, scrolling log with product
// carousels, and the draft input.
type Model struct {
	backend *ControllerBackend
	ctrl    *conversation.Controller
	opts    Options

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	// one carousel per product message, keyed by message ID
	carousels map[string]*carousel.Carousel
	order     []string
	active    string

	status string
	width  int
	height int
}

// NewModel builds the chat model around backend, tracking carousels for
// any product messages already in the log.
func NewModel(backend *ControllerBackend, opts Options) Model {
	if opts.Text == nil {
		opts.Text = plainRenderer{}
	}
	if opts.CopyToClipboard == nil {
		opts.CopyToClipboard = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "› "
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("27"))

	m := Model{
		backend:   backend,
		ctrl:      backend.Controller(),
		opts:      opts,
		input:     ti,
		viewport:  viewport.New(defaultWidth, 20),
		spinner:   sp,
		help:      help.New(),
		keys:      defaultKeyMap(),
		carousels: map[string]*carousel.Carousel{},
		width:     defaultWidth,
		height:    24,
	}
	for _, msg := range m.ctrl.State().Log {
		m.trackCarousel(msg)
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch ev := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = ev.Width
		m.height = ev.Height
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(ev)

	case ReplyMsg:
		reply := m.ctrl.Settle(ev.Outcome)
		var cmds []tea.Cmd
		if c := m.trackCarousel(reply); c != nil {
			m.active = reply.ID
			cmds = append(cmds, m.probeCurrent(reply.ID))
		}
		m.refresh()
		// focus returns to the draft after every completed cycle
		cmds = append(cmds, m.input.Focus())
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.ctrl.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(ev)
		m.refresh()
		return m, cmd

	case imageProbeMsg:
		if ev.err == nil {
			return m, nil
		}
		c, ok := m.carousels[ev.messageID]
		if !ok || c.Index() != ev.index {
			return m, nil
		}
		log.Debug().Err(ev.err).Int("index", ev.index).Msg("product image failed to load")
		c.MarkImageFailed()
		m.refresh()
		return m, nil

	case clipboardMsg:
		if ev.err != nil {
			m.status = errorStyle.Render("could not copy link: " + ev.err.Error())
		} else {
			m.status = "copied " + ev.url
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(ev tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(ev, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(ev, m.keys.Submit):
		cmd := m.backend.Submit(m.input.Value())
		if cmd == nil {
			return m, nil
		}
		m.input.SetValue("")
		m.status = ""
		m.refresh()
		return m, tea.Batch(cmd, m.spinner.Tick)

	case key.Matches(ev, m.keys.PrevProduct):
		return m.navigate(func(c *carousel.Carousel) { c.Previous() })

	case key.Matches(ev, m.keys.NextProduct):
		return m.navigate(func(c *carousel.Carousel) { c.Next() })

	case key.Matches(ev, m.keys.SelectProduct):
		i := int(ev.Runes[len(ev.Runes)-1] - '1')
		return m.navigate(func(c *carousel.Carousel) { c.SelectIndex(i) })

	case key.Matches(ev, m.keys.PrevCarousel):
		m.moveFocus(-1)
		m.refresh()
		return m, nil

	case key.Matches(ev, m.keys.NextCarousel):
		m.moveFocus(1)
		m.refresh()
		return m, nil

	case key.Matches(ev, m.keys.Details):
		return m, m.copyDetails()

	case key.Matches(ev, m.keys.ScrollUp), key.Matches(ev, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(ev)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(ev)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

// navigate applies fn to the focused carousel; only carousels with
// controls can be navigated.
func (m Model) navigate(fn func(c *carousel.Carousel)) (tea.Model, tea.Cmd) {
	c := m.activeCarousel()
	if c == nil || !c.HasControls() {
		return m, nil
	}
	before := c.Index()
	fn(c)
	m.refresh()
	if c.Index() == before {
		return m, nil
	}
	return m, m.probeCurrent(m.active)
}

func (m *Model) moveFocus(delta int) {
	if len(m.order) == 0 {
		return
	}
	pos := len(m.order) - 1
	for i, id := range m.order {
		if id == m.active {
			pos = i
		}
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.order) {
		pos = len(m.order) - 1
	}
	m.active = m.order[pos]
}

func (m Model) activeCarousel() *carousel.Carousel {
	if m.active == "" {
		return nil
	}
	return m.carousels[m.active]
}

func (m *Model) trackCarousel(msg chat.Message) *carousel.Carousel {
	if !msg.HasProducts() {
		return nil
	}
	if c, ok := m.carousels[msg.ID]; ok {
		return c
	}
	c := carousel.New(msg.Products, carousel.WithPlaceholder(m.opts.PlaceholderImage))
	m.carousels[msg.ID] = c
	m.order = append(m.order, msg.ID)
	if m.active == "" {
		m.active = msg.ID
	}
	return c
}

func (m Model) probeCurrent(messageID string) tea.Cmd {
	if m.opts.Prober == nil {
		return nil
	}
	c, ok := m.carousels[messageID]
	if !ok {
		return nil
	}
	p, ok := c.Current()
	if !ok {
		return nil
	}
	index := c.Index()
	prober := m.opts.Prober
	return func() tea.Msg {
		return imageProbeMsg{messageID: messageID, index: index, err: prober.Probe(context.Background(), p.ImageURL)}
	}
}

func (m Model) copyDetails() tea.Cmd {
	c := m.activeCarousel()
	if c == nil {
		return nil
	}
	p, ok := c.Current()
	if !ok || p.DetailURL == "" {
		return nil
	}
	copyFn := m.opts.CopyToClipboard
	url := p.DetailURL
	return func() tea.Msg {
		return clipboardMsg{url: url, err: copyFn(url)}
	}
}

func (m *Model) layout() {
	headerHeight := 2
	inputHeight := 3
	helpHeight := 1
	h := m.height - headerHeight - inputHeight - helpHeight
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.input.Width = m.width - 4
}

// refresh re-renders the log into the viewport and keeps it scrolled to the bottom.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m Model) renderLog() string {
	state := m.ctrl.State()
	blocks := make([]string, 0, len(state.Log)+1)
	for _, msg := range state.Log {
		block := renderMessage(msg, m.width, m.opts.Text)
		if c, ok := m.carousels[msg.ID]; ok {
			if cv := RenderCarousel(c, msg.ID == m.active, m.width); cv != "" {
				block += "\n" + cv
			}
		}
		blocks = append(blocks, block)
	}
	if state.Pending {
		blocks = append(blocks, botLabel.Render("Bot")+" "+m.spinner.View())
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) View() string {
	header := headerStyle.Render(Title) + " " + subHeaderStyle.Render(Subtitle)

	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	switch {
	case m.ctrl.Pending():
		footer = statusStyle.Render("waiting for reply…")
	case m.status != "":
		footer = m.status
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.viewport.View(),
		"",
		m.input.View(),
		footer,
	)
}

// Carousels returns the carousels in log order; used by callers that render elsewhere.
func (m Model) Carousels() []*carousel.Carousel {
	out := make([]*carousel.Carousel, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.carousels[id])
	}
	return out
}
