package cmds

import (
	"github.com/go-go-golems/gorgia-chat/pkg/config"
	"github.com/go-go-golems/gorgia-chat/pkg/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// loadSettings resolves flags, env, .env and the config file for cmd.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	v, err := config.InitViper(cmd)
	if err != nil {
		return config.Settings{}, err
	}
	return config.Load(v)
}

// initLogging sets up the global logger. discard silences console output
// for commands that own the terminal; --log-file still applies.
func initLogging(s config.Settings, discard bool) error {
	ls := s.Logging
	ls.Discard = discard
	if err := logging.InitLogger(ls); err != nil {
		return errors.Wrap(err, "init logger")
	}
	return nil
}
