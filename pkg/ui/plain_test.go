package ui

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/go-go-golems/gorgia-chat/pkg/conversation"
	"github.com/stretchr/testify/require"
	"github.com/tcnksm/go-input"
)

type scriptedAsker struct {
	lines []string
}

func (s *scriptedAsker) Ask(query string, opts *input.Options) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestPlainSession_Conversation(t *testing.T) {
	var sent []string
	sender := conversation.SenderFunc(func(ctx context.Context, text string) (chat.Reply, error) {
		sent = append(sent, text)
		if text == "sofas" {
			return chat.ProductListReply{Text: "Here are results", Products: []chat.Product{
				{Name: "Sofa A", DetailURL: "https://shop/a"},
				{Name: "Sofa B", DetailURL: "https://shop/b"},
			}}, nil
		}
		return chat.TextReply{Text: "echo " + text}, nil
	})
	ctrl, err := conversation.NewController(sender, conversation.WithGreeting("welcome"))
	require.NoError(t, err)

	var copied string
	var out bytes.Buffer
	p := NewPlainSession(ctrl, nil, &out, Options{CopyToClipboard: func(s string) error {
		copied = s
		return nil
	}}).WithAsker(&scriptedAsker{lines: []string{
		"hello", "", "sofas", "/next", "/details", "/go 1", "/go 7", "/unknown", "/quit", "never sent",
	}})

	require.NoError(t, p.Run(context.Background()))
	require.Equal(t, []string{"hello", "sofas", "/unknown"}, sent)
	require.Equal(t, "https://shop/b", copied)

	text := out.String()
	require.Contains(t, text, "welcome")
	require.Contains(t, text, "echo hello")
	require.Contains(t, text, "Sofa A")
	require.Contains(t, text, "Sofa B")
	require.Contains(t, text, "no product 7")
	require.Len(t, ctrl.State().Log, 7)
}

func TestPlainSession_CommandsWithoutProducts(t *testing.T) {
	ctrl, err := conversation.NewController(conversation.SenderFunc(func(ctx context.Context, text string) (chat.Reply, error) {
		return chat.RawReply{Text: "x"}, nil
	}))
	require.NoError(t, err)

	var out bytes.Buffer
	p := NewPlainSession(ctrl, nil, &out, Options{}).WithAsker(&scriptedAsker{lines: []string{"/next"}})
	require.NoError(t, p.Run(context.Background()))
	require.Contains(t, out.String(), "no products to browse")
	require.Empty(t, ctrl.State().Log)
}
