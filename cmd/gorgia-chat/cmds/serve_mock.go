package cmds

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/go-go-golems/gorgia-chat/pkg/mockserver"
	"github.com/spf13/cobra"
)

// NewServeMockCommand serves canned replies on /api/chat for offline use.
func NewServeMockCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve-mock",
		Short: "Serve a local stand-in for the chat endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			fixtures, _ := cmd.Flags().GetString("fixtures")
			delay, _ := cmd.Flags().GetDuration("delay")
			rps, _ := cmd.Flags().GetFloat64("rate")
			burst, _ := cmd.Flags().GetInt("burst")

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if err := initLogging(s, false); err != nil {
				return err
			}

			var f *mockserver.Fixtures
			if fixtures != "" {
				f, err = mockserver.LoadFixtures(fixtures)
			} else {
				f, err = mockserver.DefaultFixtures()
			}
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return mockserver.NewServer(f,
				mockserver.WithDelay(delay),
				mockserver.WithRateLimit(rps, burst),
			).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().String("addr", ":8787", "listen address")
	cmd.Flags().String("fixtures", "", "YAML fixtures file (defaults to the built-in set)")
	cmd.Flags().Duration("delay", 0, "delay every chat reply")
	cmd.Flags().Float64("rate", 0, "allowed chat requests per second (0 disables limiting)")
	cmd.Flags().Int("burst", 1, "request burst allowed above --rate")
	return cmd
}
