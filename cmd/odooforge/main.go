package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/odooforge/odooforge/internal/core/archive"
	"github.com/odooforge/odooforge/internal/core/synth"
	"github.com/odooforge/odooforge/internal/shell/store"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return reportError(err)
	}
	return ExitSuccess
}

// reportError prints err to stderr and maps it to an exit code. Validation
// failures list every violation with the blocking one first.
func reportError(err error) int {
	var vErr *synth.ValidationError
	if errors.As(err, &vErr) && len(vErr.Violations) > 0 {
		fmt.Fprintf(os.Stderr, "error: %v\n", vErr.Violations[0])
		for _, violation := range vErr.Violations[1:] {
			fmt.Fprintf(os.Stderr, "  also: %v\n", violation)
		}
		return ExitValidationError
	}

	fmt.Fprintf(os.Stderr, "error: %v\n", err)

	var sErr *store.StoreError
	if errors.As(err, &sErr) {
		return ExitStoreError
	}
	if errors.Is(err, archive.ErrPackaging) {
		return ExitOutputError
	}
	if errors.Is(err, errVerifyFindings) {
		return ExitVerifyError
	}
	return ExitConfigError
}
