// cmd/web/check.go
//
// Jeevan – offline validation.
//
// `jeevan check` runs a submission through the same validators the web
// forms use, without starting a server.  Input is one JSON object of
// strings, read from the named file or stdin.  Accepted submissions are
// printed as normalised JSON; a rejection prints the failing field and
// message and exits 1.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanizio/jeevan/internal/registration"
	"github.com/yanizio/jeevan/internal/subscription"
	"github.com/yanizio/jeevan/internal/validate"
)

func newCheckCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a registration or subscription given as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return check(in, cmd.OutOrStdout(), kind)
		},
	}
	cmd.Flags().StringVarP(&kind, "form", "f", "registration", "form to validate: registration or subscription")
	return cmd
}

func check(in io.Reader, out io.Writer, kind string) error {
	var raw map[string]string
	if err := json.NewDecoder(in).Decode(&raw); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	var (
		accepted any
		err      error
	)
	switch kind {
	case "registration":
		accepted, err = registration.Validate(raw)
	case "subscription":
		accepted, err = subscription.Validate(raw[subscription.FieldEmail])
	default:
		return fmt.Errorf("unknown form %q", kind)
	}

	if fe, ok := validate.AsFieldError(err); ok {
		fmt.Fprintf(out, "rejected: %s (%s): %s\n", fe.Field, fe.Reason(), fe.Message)
		return errRejected
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(accepted)
}
