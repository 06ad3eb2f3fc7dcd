package cmds

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/go-go-golems/gorgia-chat/pkg/ui/runtime"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// RunChat starts the full-screen chat, or line mode when --plain is set or
// stdin/stdout are not terminals.
func RunChat(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	tui := !s.Plain && isInteractive()
	if err := initLogging(s, tui); err != nil {
		return err
	}

	if !tui {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		session, err := runtime.NewChatBuilder(s).WithContext(ctx).BuildPlainSession(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		log.Debug().Str("endpoint", s.Endpoint).Msg("starting line-mode chat")
		return session.Run(ctx)
	}

	p, err := runtime.NewChatBuilder(s).WithContext(cmd.Context()).BuildProgram()
	if err != nil {
		return err
	}
	log.Debug().Str("endpoint", s.Endpoint).Msg("starting chat UI")
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run chat UI")
	}
	return nil
}

func NewChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the Gorgia assistant",
		Args:  cobra.NoArgs,
		RunE:  RunChat,
	}
}
