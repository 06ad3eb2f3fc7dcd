package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-go-golems/gorgia-chat/pkg/carousel"
	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/go-go-golems/gorgia-chat/pkg/conversation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tcnksm/go-input"
	"golang.org/x/term"
)

// Asker reads one line of user input.
type Asker interface {
	Ask(query string, opts *input.Options) (string, error)
}

// PlainSession is the line-mode chat used when stdin or stdout is not a
// terminal. Lines starting with a slash drive the latest product carousel:
// /next, /prev, /go N, /details and /quit.
type PlainSession struct {
	ctrl   *conversation.Controller
	asker  Asker
	out    io.Writer
	width  int
	opts   Options
	latest *carousel.Carousel
}

func NewPlainSession(ctrl *conversation.Controller, in io.Reader, out io.Writer, opts Options) *PlainSession {
	width := defaultWidth
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	if opts.Text == nil {
		opts.Text = plainRenderer{}
	}
	return &PlainSession{
		ctrl:  ctrl,
		asker: &input.UI{Reader: in, Writer: out},
		out:   out,
		width: width,
		opts:  opts,
	}
}

// WithAsker replaces the line reader.
func (p *PlainSession) WithAsker(a Asker) *PlainSession {
	p.asker = a
	return p
}

func (p *PlainSession) Run(ctx context.Context) error {
	for _, msg := range p.ctrl.State().Log {
		p.print(msg)
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := p.asker.Ask("you", &input.Options{HideOrder: true})
		if err != nil {
			// end of input or interrupt ends the session
			log.Debug().Err(err).Msg("plain session input closed")
			return nil
		}
		if strings.HasPrefix(line, "/") {
			quit, err := p.command(ctx, line)
			if err != nil {
				_, _ = fmt.Fprintln(p.out, errorStyle.Render(err.Error()))
			}
			if quit {
				return nil
			}
			continue
		}
		msg, ok := p.ctrl.Exchange(ctx, line)
		if !ok {
			continue
		}
		p.print(msg)
	}
}

func (p *PlainSession) command(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil
	case "/next", "/prev", "/go", "/details":
	default:
		// not a command: send it as a message
		if msg, ok := p.ctrl.Exchange(ctx, line); ok {
			p.print(msg)
		}
		return false, nil
	}

	c := p.latest
	if c == nil {
		return false, errors.New("no products to browse")
	}
	switch fields[0] {
	case "/next":
		c.Next()
	case "/prev":
		c.Previous()
	case "/go":
		if len(fields) != 2 {
			return false, errors.New("usage: /go N")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || !c.SelectIndex(n-1) {
			return false, errors.Errorf("no product %s", fields[1])
		}
	case "/details":
		cur, _ := c.Current()
		if cur.DetailURL == "" {
			return false, errors.New("product has no link")
		}
		copyFn := p.opts.CopyToClipboard
		if copyFn != nil {
			if err := copyFn(cur.DetailURL); err != nil {
				log.Debug().Err(err).Msg("clipboard unavailable")
			}
		}
		_, _ = fmt.Fprintln(p.out, cur.DetailURL)
		return false, nil
	}
	p.probe(ctx, c)
	_, _ = fmt.Fprintln(p.out, RenderCarousel(c, false, p.width))
	return false, nil
}

func (p *PlainSession) print(msg chat.Message) {
	_, _ = fmt.Fprintln(p.out, renderMessage(msg, p.width, p.opts.Text))
	if !msg.HasProducts() {
		return
	}
	c := carousel.New(msg.Products, carousel.WithPlaceholder(p.opts.PlaceholderImage))
	p.latest = c
	p.probe(context.Background(), c)
	_, _ = fmt.Fprintln(p.out, RenderCarousel(c, false, p.width))
}

func (p *PlainSession) probe(ctx context.Context, c *carousel.Carousel) {
	if p.opts.Prober == nil {
		return
	}
	cur, ok := c.Current()
	if !ok {
		return
	}
	if err := p.opts.Prober.Probe(ctx, cur.ImageURL); err != nil {
		c.MarkImageFailed()
	}
}
