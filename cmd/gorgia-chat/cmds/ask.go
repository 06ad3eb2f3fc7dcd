package cmds

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/go-go-golems/gorgia-chat/pkg/ui/runtime"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewAskCommand sends a single message and prints the bot's reply.
func NewAskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if err := initLogging(s, false); err != nil {
				return err
			}
			ctrl, err := runtime.NewChatBuilder(s).WithContext(cmd.Context()).BuildController()
			if err != nil {
				return err
			}

			req, ok := ctrl.Submit(strings.Join(args, " "))
			if !ok {
				return errors.New("message is empty")
			}
			out := ctrl.Dispatch(cmd.Context(), req)
			msg := ctrl.Settle(out)
			if err := writeMessage(cmd.OutOrStdout(), msg, output); err != nil {
				return err
			}
			return out.Err
		},
	}
	cmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	return cmd
}

func writeMessage(w io.Writer, msg chat.Message, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(msg)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(msg); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		if _, err := fmt.Fprintln(w, msg.Text); err != nil {
			return err
		}
		for i, p := range msg.Products {
			line := fmt.Sprintf("%d. %s", i+1, p.Name)
			if p.Price != "" {
				line += " - " + p.Price
			}
			if p.DetailURL != "" {
				line += " <" + p.DetailURL + ">"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}
