package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	werrors "github.com/vango-dev/widgets/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		werrors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "widgets",
		Short: "Tools for widget documents",
		Long: `widgets works with HTML documents the way the widgets library does.

  • fetch    run a request and print the decoded body
  • query    run a selector against a document
  • choice   relabel matching elements with a class
  • serve    preview a frame with live reload`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		fetchCmd(),
		queryCmd(),
		choiceCmd(),
		serveCmd(),
		versionCmd(),
	)
	return rootCmd
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, werrors.New("X002").WithDetail(path).Wrap(err)
	}
	return f, nil
}

// warn prints a warning message.
func warn(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
