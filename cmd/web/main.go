// cmd/web/main.go
//
// Jeevan – command-line entry point.
//
// Commands
// --------
//
//	jeevan serve          – run the web server (default).
//	jeevan check [file]   – validate one submission from a JSON file or stdin.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// errRejected makes check exit 1 without printing usage.
var errRejected = errors.New("submission rejected")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jeevan",
		Short:         "Jeevan blood donation site",
		Long:          `Jeevan serves the blood donation landing page, validates donor and acceptor registrations, and answers newsletter sign-ups.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serve := newServeCmd()
	root.AddCommand(serve, newCheckCmd())
	root.RunE = serve.RunE
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "jeevan:", err)
		}
		os.Exit(1)
	}
}
