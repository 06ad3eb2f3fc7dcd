package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeReply_PlainStringResponse(t *testing.T) {
	r, err := DecodeReply([]byte(`{"response": "hi there"}`))
	require.NoError(t, err)
	require.Equal(t, RawReply{Text: "hi there"}, r)

	msg := r.Message()
	require.Equal(t, RoleBot, msg.Role)
	require.Equal(t, "hi there", msg.Text)
	require.Empty(t, msg.Products)
	require.NotEmpty(t, msg.ID)
}

func TestDecodeReply_ProductList(t *testing.T) {
	body := `{"response": {"type": "product_list", "message": "Here are results", "products": [
		{"name": "P1", "price": "10 ₾", "image_url": "https://img/1.png", "url": "https://shop/1"},
		{"name": "P2", "price": 25.5, "image_url": "https://img/2.png", "url": "https://shop/2"}
	]}}`
	r, err := DecodeReply([]byte(body))
	require.NoError(t, err)

	pl, ok := r.(ProductListReply)
	require.True(t, ok)
	require.Equal(t, "Here are results", pl.Text)
	require.Len(t, pl.Products, 2)
	require.Equal(t, Product{Name: "P1", Price: "10 ₾", ImageURL: "https://img/1.png", DetailURL: "https://shop/1"}, pl.Products[0])
	require.Equal(t, "25.5", pl.Products[1].Price)

	msg := r.Message()
	require.Equal(t, "Here are results", msg.Text)
	require.Equal(t, pl.Products, msg.Products)
}

func TestDecodeReply_ServerErrorWinsOverResponse(t *testing.T) {
	r, err := DecodeReply([]byte(`{"error": "no results found", "response": "ignored"}`))
	require.NoError(t, err)
	require.Equal(t, ServerError{Text: "no results found"}, r)
	require.Equal(t, "no results found", r.Message().Text)
}

func TestDecodeReply_FalsyErrorIsIgnored(t *testing.T) {
	for _, body := range []string{
		`{"error": "", "response": "ok"}`,
		`{"error": null, "response": "ok"}`,
		`{"error": false, "response": "ok"}`,
		`{"error": 0, "response": "ok"}`,
	} {
		r, err := DecodeReply([]byte(body))
		require.NoError(t, err, body)
		require.Equal(t, RawReply{Text: "ok"}, r, body)
	}
}

func TestDecodeReply_MessageObject(t *testing.T) {
	r, err := DecodeReply([]byte(`{"response": {"message": "plain answer", "extra": 1}}`))
	require.NoError(t, err)
	require.Equal(t, TextReply{Text: "plain answer"}, r)
}

func TestDecodeReply_ProductListBeatsMessage(t *testing.T) {
	r, err := DecodeReply([]byte(`{"response": {"message": "m", "type": "product_list"}}`))
	require.NoError(t, err)
	pl, ok := r.(ProductListReply)
	require.True(t, ok)
	require.Equal(t, "m", pl.Text)
	require.Nil(t, pl.Products)
}

func TestDecodeReply_ProductListWithoutMessage(t *testing.T) {
	r, err := DecodeReply([]byte(`{"response": {"type": "product_list", "products": [{"name": "A", "price": 1234567.5}]}}`))
	require.NoError(t, err)
	pl, ok := r.(ProductListReply)
	require.True(t, ok)
	require.Equal(t, "undefined", pl.Text)
	require.Len(t, pl.Products, 1)
	require.Equal(t, "1234567.5", pl.Products[0].Price)
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		42:        "42",
		-7:        "-7",
		0.1:       "0.1",
		1234567.5: "1234567.5",
		0.000001:  "0.000001",
		1e-7:      "1e-7",
		1.25e-10:  "1.25e-10",
		1e20:      "100000000000000000000",
		1e21:      "1e+21",
		1.5e300:   "1.5e+300",
	}
	for in, want := range cases {
		require.Equal(t, want, formatNumber(in), "%v", in)
	}
}

func TestDecodeReply_Coercion(t *testing.T) {
	cases := map[string]string{
		`{}`:                             "undefined",
		`{"response": null}`:             "null",
		`{"response": 42}`:               "42",
		`{"response": 1.5}`:              "1.5",
		`{"response": 1234567.5}`:        "1234567.5",
		`{"response": 0.000001}`:         "0.000001",
		`{"response": 1e-7}`:             "1e-7",
		`{"response": 1.5e21}`:           "1.5e+21",
		`{"response": -0.00000123}`:      "-0.00000123",
		`{"response": 1e21}`:             "1e+21",
		`{"response": true}`:             "true",
		`{"response": {"foo": "bar"}}`:   "[object Object]",
		`{"response": {"message": ""}}`:  "[object Object]",
		`{"response": [1, "a", null]}`:   "1,a,",
		`{"response": [[1, 2], {}]}`:     "1,2,[object Object]",
		`"just a string"`:                "undefined",
	}
	for body, want := range cases {
		r, err := DecodeReply([]byte(body))
		require.NoError(t, err, body)
		require.Equal(t, RawReply{Text: want}, r, body)
	}
}

func TestDecodeReply_SkipsMalformedProducts(t *testing.T) {
	r, err := DecodeReply([]byte(`{"response": {"type": "product_list", "message": "x", "products": [1, {"name": "ok"}, "no"]}}`))
	require.NoError(t, err)
	pl := r.(ProductListReply)
	require.Len(t, pl.Products, 1)
	require.Equal(t, "ok", pl.Products[0].Name)
}

func TestDecodeReply_InvalidBodies(t *testing.T) {
	for _, body := range []string{``, `   `, `<html>bad gateway</html>`, `{"response":`, `null`} {
		_, err := DecodeReply([]byte(body))
		require.Error(t, err, body)
	}
}
