// controlcheck is a CI gate for repositories of RBAC control files. It
// validates folder structure, filename conventions, and document content,
// and signals the outcome through a status file and its exit code.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tdops/controlcheck/pkg/cli"
	"github.com/tdops/controlcheck/pkg/console"
)

// version is set at build time via -ldflags.
var version = "dev"

// Exit codes: validation failures and usage errors are distinguishable so
// pipelines can gate on either the exit code or the status file.
const (
	exitValidationFailed = 1
	exitUsageError       = 2
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, cli.ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(exitValidationFailed)
		}
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(exitUsageError)
	}
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "controlcheck",
		Short: "Validate RBAC control-file repositories",
		Long: `controlcheck validates a repository of infrastructure-as-config RBAC
control files: the per-environment folder structure, the control-file
naming convention, and each file's content against the role definition
schema. It is designed to gate merges in CI via a status file and its
exit code.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.NewValidateCommand())
	return rootCmd
}
