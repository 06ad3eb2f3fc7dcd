// Package carousel implements the selection state of a product carousel:
// a cyclic index over a product list that is fixed for the carousel's lifetime.
package carousel

import (
	"github.com/go-go-golems/gorgia-chat/pkg/chat"
)

// DefaultPlaceholderImage replaces an image that failed to load.
const DefaultPlaceholderImage = "https://placehold.co/400x400?text=No+Image"

type Carousel struct {
	items       []chat.Product
	index       int
	imageFailed bool
	placeholder string
}

type Option func(*Carousel)

func WithPlaceholder(url string) Option {
	return func(c *Carousel) {
		if url != "" {
			c.placeholder = url
		}
	}
}

// New copies items; later changes to the caller's slice do not affect the carousel.
func New(items []chat.Product, options ...Option) *Carousel {
	c := &Carousel{
		items:       append([]chat.Product(nil), items...),
		placeholder: DefaultPlaceholderImage,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *Carousel) Len() int { return len(c.items) }

func (c *Carousel) Index() int { return c.index }

// Visible is false for an empty carousel, which renders nothing.
func (c *Carousel) Visible() bool { return len(c.items) > 0 }

// HasControls reports whether navigation and page indicators are shown.
func (c *Carousel) HasControls() bool { return len(c.items) > 1 }

func (c *Carousel) Items() []chat.Product {
	return append([]chat.Product(nil), c.items...)
}

func (c *Carousel) Current() (chat.Product, bool) {
	if len(c.items) == 0 {
		return chat.Product{}, false
	}
	return c.items[c.index], true
}

func (c *Carousel) Next() {
	if len(c.items) == 0 {
		return
	}
	c.setIndex((c.index + 1) % len(c.items))
}

func (c *Carousel) Previous() {
	if len(c.items) == 0 {
		return
	}
	c.setIndex((c.index - 1 + len(c.items)) % len(c.items))
}

// SelectIndex jumps to i. Out of range indices are rejected.
func (c *Carousel) SelectIndex(i int) bool {
	if i < 0 || i >= len(c.items) {
		return false
	}
	c.setIndex(i)
	return true
}

// MarkImageFailed swaps the current item's image for the placeholder.
// It does not change the index or the items.
func (c *Carousel) MarkImageFailed() {
	if len(c.items) == 0 {
		return
	}
	c.imageFailed = true
}

func (c *Carousel) ImageFailed() bool { return c.imageFailed }

// ImageURL is the image to display for the current item.
func (c *Carousel) ImageURL() string {
	cur, ok := c.Current()
	if !ok {
		return ""
	}
	if c.imageFailed {
		return c.placeholder
	}
	return cur.ImageURL
}

// the image element is reused across items, so a failure only sticks to
// the item it happened on
func (c *Carousel) setIndex(i int) {
	if i != c.index {
		c.imageFailed = false
	}
	c.index = i
}
