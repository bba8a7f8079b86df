// Package cli holds the iss-spotter command tree.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "iss-spotter",
		Short: "Find out when the International Space Station passes overhead.",
		Long: `iss-spotter resolves a public IP to coordinates and asks open-notify
for the next ISS passes. Run it once with "passes" or as an HTTP API with "serve".`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
}

// NewCLI builds the complete command tree. osSignal stops long running
// commands; tests pass their own channel.
func NewCLI(osSignal <-chan os.Signal) *cobra.Command {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newServeCmd(osSignal))
	rootCmd.AddCommand(newPassesCmd())
	rootCmd.AddCommand(newTokenCmd())

	return rootCmd
}

// NewInterruptSignalChannel returns a channel notified on SIGINT and SIGTERM.
func NewInterruptSignalChannel() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch
}

// Execute runs the cli and exits non-zero on failure.
func Execute() {
	if err := NewCLI(NewInterruptSignalChannel()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
