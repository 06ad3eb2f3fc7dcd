package cmds

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/go-go-golems/gorgia-chat/pkg/config"
	"github.com/go-go-golems/gorgia-chat/pkg/mockserver"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runAsk(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	f, err := mockserver.DefaultFixtures()
	require.NoError(t, err)
	srv := httptest.NewServer(mockserver.NewServer(f).Router())
	t.Cleanup(srv.Close)

	root := &cobra.Command{Use: "test"}
	config.AddFlags(root)
	root.AddCommand(NewAskCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"ask", "--endpoint", srv.URL + "/api/chat", "--log-level", "error"}, args...))
	err = root.Execute()
	return out.String(), err
}

func TestAsk_Text(t *testing.T) {
	out, err := runAsk(t, "show", "me", "a", "sofa")
	require.NoError(t, err)
	require.Contains(t, out, "Here are some sofas you might like")
	require.Contains(t, out, "1. Corner sofa Milano - 1299 ₾ <https://gorgia.ge/ka/products/corner-sofa-milano>")
	require.Contains(t, out, "3. Armchair Bergen - 349")
}

func TestAsk_JSON(t *testing.T) {
	out, err := runAsk(t, "--output", "json", "lamp")
	require.NoError(t, err)

	var msg chat.Message
	require.NoError(t, json.Unmarshal([]byte(out), &msg))
	require.Equal(t, chat.RoleBot, msg.Role)
	require.Equal(t, "I found one lamp", msg.Text)
	require.Len(t, msg.Products, 1)
}

func TestAsk_YAML(t *testing.T) {
	out, err := runAsk(t, "-o", "yaml", "unicorn")
	require.NoError(t, err)

	var msg chat.Message
	require.NoError(t, yaml.Unmarshal([]byte(out), &msg))
	require.Equal(t, "no results found", msg.Text)
}

func TestAsk_TransportErrorIsReturned(t *testing.T) {
	out, err := runAsk(t, "broken")
	require.Error(t, err)
	require.Contains(t, out, "Error: ")
}

func TestAsk_UnknownFormat(t *testing.T) {
	_, err := runAsk(t, "-o", "xml", "lamp")
	require.Error(t, err)
}

func TestAsk_BlankMessage(t *testing.T) {
	_, err := runAsk(t, "   ")
	require.Error(t, err)
}
