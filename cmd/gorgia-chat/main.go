package main

import (
	"os"

	"github.com/go-go-golems/gorgia-chat/cmd/gorgia-chat/cmds"
	"github.com/go-go-golems/gorgia-chat/pkg/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          config.AppName,
		Short:        "Terminal client for the Gorgia store assistant",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         cmds.RunChat,
	}
	config.AddFlags(rootCmd)
	rootCmd.AddCommand(
		cmds.NewChatCommand(),
		cmds.NewAskCommand(),
		cmds.NewServeMockCommand(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
