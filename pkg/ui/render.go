package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/gorgia-chat/pkg/carousel"
	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/rs/zerolog/log"
)

const defaultWidth = 80

// TextRenderer renders bot text for a given width.
type TextRenderer interface {
	Render(text string, width int) string
}

type plainRenderer struct{}

func (plainRenderer) Render(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}

// markdownRenderer caches one glamour renderer per wrap width.
type markdownRenderer struct {
	style string
	width int
	r     *glamour.TermRenderer
}

func NewMarkdownRenderer(style string) TextRenderer {
	if style == "" {
		style = "dark"
	}
	return &markdownRenderer{style: style}
}

func (m *markdownRenderer) Render(text string, width int) string {
	if m.r == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Warn().Err(err).Msg("markdown renderer unavailable, using plain text")
			return plainRenderer{}.Render(text, width)
		}
		m.r = r
		m.width = width
	}
	out, err := m.r.Render(text)
	if err != nil {
		return plainRenderer{}.Render(text, width)
	}
	return strings.Trim(out, "\n")
}

func renderMessage(msg chat.Message, width int, text TextRenderer) string {
	bubbleWidth := width * 4 / 5
	if bubbleWidth < 10 {
		bubbleWidth = width
	}
	switch msg.Role {
	case chat.RoleSystem:
		return systemStyle.Width(width).Render(msg.Text)
	case chat.RoleUser:
		body := userBubble.Render(lipgloss.NewStyle().Width(bubbleWidth - 2).Render(msg.Text))
		block := lipgloss.JoinVertical(lipgloss.Right, userLabel.Render("You"), body)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	default:
		inner := bubbleWidth - 4
		if inner < 1 {
			inner = 1
		}
		body := botBubble.Render(text.Render(msg.Text, inner))
		return lipgloss.JoinVertical(lipgloss.Left, botLabel.Render("Bot"), body)
	}
}

// RenderCarousel draws the current product card. An empty carousel renders
// as the empty string; a single product renders without controls.
func RenderCarousel(c *carousel.Carousel, focused bool, width int) string {
	if c == nil || !c.Visible() {
		return ""
	}
	p, _ := c.Current()

	cardWidth := width - 2
	if cardWidth > 72 {
		cardWidth = 72
	}
	if cardWidth < 20 {
		cardWidth = 20
	}
	textWidth := cardWidth - 4

	lines := []string{
		productNameStyle.Width(textWidth).Render(p.Name),
		priceStyle.Render(p.Price),
		linkStyle.Width(textWidth).Render("image:   " + c.ImageURL()),
		linkStyle.Width(textWidth).Render("details: " + p.DetailURL),
	}
	if c.HasControls() {
		lines = append(lines, "", renderControls(c))
	}

	style := cardStyle
	if focused {
		style = focusedCardStyle
	}
	return style.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func renderControls(c *carousel.Carousel) string {
	dots := make([]string, c.Len())
	for i := range dots {
		if i == c.Index() {
			dots[i] = activeDotStyle.Render("●")
		} else {
			dots[i] = dotStyle.Render("○")
		}
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		navStyle.Render("‹"),
		strings.Join(dots, " "),
		navStyle.Render("›"),
		navStyle.Render(fmt.Sprintf("%d/%d", c.Index()+1, c.Len())),
	)
}
