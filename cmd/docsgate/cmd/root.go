package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "docsgate",
	Short: "DocsGate is the documentation portal's auth and directory service",
	Long: `The authentication and user directory backend for the documentation portal.
Login is a two-step flow: a password check that emails a one-time passcode,
then passcode verification that yields a session token.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
