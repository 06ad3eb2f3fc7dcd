package chat

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const productListType = "product_list"

// Reply is the decoded form of a chat endpoint response body.
// It is one of ServerError, ProductListReply, TextReply or RawReply.
type Reply interface {
	// Message converts the reply into the bot message appended to the log.
	Message() Message
	isReply()
}

// ServerError is a response carrying an `error` field.
type ServerError struct {
	Text string
}

// ProductListReply is a `response` object with `type: "product_list"`.
type ProductListReply struct {
	Text     string
	Products []Product
}

// TextReply is a `response` object with a `message` field.
type TextReply struct {
	Text string
}

// RawReply is anything else; Text is the string form of `response`.
type RawReply struct {
	Text string
}

func (r ServerError) Message() Message      { return NewMessage(RoleBot, r.Text) }
func (r ProductListReply) Message() Message { return NewProductMessage(r.Text, r.Products) }
func (r TextReply) Message() Message        { return NewMessage(RoleBot, r.Text) }
func (r RawReply) Message() Message         { return NewMessage(RoleBot, r.Text) }

func (ServerError) isReply()      {}
func (ProductListReply) isReply() {}
func (TextReply) isReply()        {}
func (RawReply) isReply()         {}

// DecodeReply decodes a response body. Fields are checked in a fixed
// order: error, product list, message, then the string form of `response`.
// An error is returned only when the body is not usable JSON.
func DecodeReply(body []byte) (Reply, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("unexpected end of JSON input")
	}
	if !json.Valid(trimmed) {
		var v interface{}
		err := json.Unmarshal(trimmed, &v)
		return nil, errors.Wrap(err, "invalid JSON body")
	}
	if string(trimmed) == "null" {
		return nil, errors.New("response body is null")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		// valid JSON that is not an object has neither field
		return RawReply{Text: "undefined"}, nil
	}

	if raw, ok := envelope["error"]; ok && truthy(raw) {
		return ServerError{Text: coerceString(raw)}, nil
	}

	raw, ok := envelope["response"]
	if !ok {
		return RawReply{Text: "undefined"}, nil
	}

	var obj map[string]json.RawMessage
	if isObject(raw) && json.Unmarshal(raw, &obj) == nil {
		if typ, ok := obj["type"]; ok && stringValue(typ) == productListType {
			return ProductListReply{
				Text:     optionalString(obj["message"]),
				Products: decodeProducts(obj["products"]),
			}, nil
		}
		if msg, ok := obj["message"]; ok && truthy(msg) {
			return TextReply{Text: coerceString(msg)}, nil
		}
	}

	return RawReply{Text: coerceString(raw)}, nil
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

func stringValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func optionalString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "undefined"
	}
	return coerceString(raw)
}

// decodeProducts skips entries that are not product objects.
func decodeProducts(raw json.RawMessage) []Product {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	products := make([]Product, 0, len(items))
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var p Product
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		products = append(products, p)
	}
	if len(products) == 0 {
		return nil
	}
	return products
}

func truthy(raw json.RawMessage) bool {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	default:
		return true
	}
}

// coerceString renders a JSON value the way a browser's String() does.
func coerceString(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "undefined"
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return stringify(v, false)
}

func stringify(v interface{}, nested bool) string {
	switch x := v.(type) {
	case nil:
		if nested {
			return ""
		}
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	case []interface{}:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = stringify(e, true)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// formatNumber renders f the way JavaScript's String(number) does: plain
// decimal for 1e-6 <= |f| < 1e21, otherwise exponent form like 1e-7 or 1.5e+21.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if a := math.Abs(f); a >= 1e-6 && a < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
