package chat

import (
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
	RoleBot    Role = "bot"
)

// Message is one entry of the visible conversation log.
// Messages are never mutated after they are appended.
type Message struct {
	ID       string    `json:"id" yaml:"id"`
	Role     Role      `json:"role" yaml:"role"`
	Text     string    `json:"text" yaml:"text"`
	Products []Product `json:"products,omitempty" yaml:"products,omitempty"`
}

func NewMessage(role Role, text string) Message {
	return Message{ID: uuid.NewString(), Role: role, Text: text}
}

func NewProductMessage(text string, products []Product) Message {
	m := NewMessage(RoleBot, text)
	if len(products) > 0 {
		m.Products = append([]Product(nil), products...)
	}
	return m
}

func (m Message) HasProducts() bool { return len(m.Products) > 0 }

// Product is a product card as sent by the chat endpoint.
type Product struct {
	Name      string `json:"name" yaml:"name"`
	Price     string `json:"price" yaml:"price"`
	ImageURL  string `json:"image_url" yaml:"image_url"`
	DetailURL string `json:"url" yaml:"url"`
}

// UnmarshalJSON accepts a numeric price and keeps its literal form.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string          `json:"name"`
		Price     json.RawMessage `json:"price"`
		ImageURL  string          `json:"image_url"`
		DetailURL string          `json:"url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decode product")
	}
	p.Name = raw.Name
	p.ImageURL = raw.ImageURL
	p.DetailURL = raw.DetailURL
	p.Price = ""
	if len(raw.Price) == 0 || string(raw.Price) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.Price, &s); err == nil {
		p.Price = s
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw.Price, &f); err == nil {
		p.Price = formatNumber(f)
		return nil
	}
	return errors.Errorf("unsupported price value %s", strconv.Quote(string(raw.Price)))
}
