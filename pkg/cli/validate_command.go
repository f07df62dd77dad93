package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tdops/controlcheck/pkg/constants"
	"github.com/tdops/controlcheck/pkg/fileutil"
	"github.com/tdops/controlcheck/pkg/logger"
)

var validateLog = logger.New("cli:validate_command")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [files-list]",
		Short: "Validate RBAC control files against structure, naming, and content rules",
		Long: `Validate a repository of RBAC control files. The folder structure under the
root is checked against the expected per-environment layout, every control
filename is checked against the naming convention, and each file in the
files list is validated as an RBAC role definition.

In files-list mode the status file path is taken from the ` + constants.StatusFileEnvVar + `
environment variable (or --status-file); on the first failure the literal
"` + constants.StatusErrorMarker + `" is written there for the calling pipeline to read.

Examples:
  controlcheck validate changed_files.txt        # Validate listed control files
  controlcheck validate --discover               # Discover and validate everything
  controlcheck validate -d --root infrastructure # Discover from an explicit root
  controlcheck validate --fail-fast files.txt    # Stop at the first error
  controlcheck validate --status-only files.txt  # Gate on the status file alone`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			discover, _ := cmd.Flags().GetBool("discover")
			root, _ := cmd.Flags().GetString("root")
			statusFile, _ := cmd.Flags().GetString("status-file")
			failFast, _ := cmd.Flags().GetBool("fail-fast")
			statusOnly, _ := cmd.Flags().GetBool("status-only")
			verbose, _ := cmd.Flags().GetBool("verbose")

			validateLog.Printf("Running validate command: discover=%v, root=%s, args=%v", discover, root, args)

			config := DefaultConfig()
			config.RootDir = root
			config.StatusFile = statusFile
			config.FailFast = failFast
			config.StatusOnly = statusOnly
			config.Verbose = verbose

			if discover {
				if len(args) != 0 {
					return fmt.Errorf("--discover does not take a files-list argument")
				}
				return RunDiscovery(config)
			}

			if len(args) != 1 {
				return fmt.Errorf("exactly one files-list argument is required (or use --discover)")
			}
			if config.StatusFile == "" {
				config.StatusFile = os.Getenv(constants.StatusFileEnvVar)
			}
			if config.StatusFile == "" {
				return fmt.Errorf("%s must be set (or pass --status-file)", constants.StatusFileEnvVar)
			}

			listPath := args[0]
			if !fileutil.FileExists(listPath) {
				return fmt.Errorf("files list not found: %s", listPath)
			}
			files, err := fileutil.ReadLines(listPath)
			if err != nil {
				return fmt.Errorf("cannot read files list: %w", err)
			}
			if len(files) == 0 {
				return fmt.Errorf("files list %s is empty: no YAML files to validate", listPath)
			}

			session := NewSession(config)
			return RunValidation(session, files)
		},
	}

	cmd.Flags().BoolP("discover", "d", false, "Discover control files under the root instead of reading a files list")
	cmd.Flags().String("root", constants.DefaultRootDir, "Control-file tree to validate")
	cmd.Flags().String("status-file", "", "Status file path (default: $"+constants.StatusFileEnvVar+")")
	cmd.Flags().Bool("fail-fast", false, "Stop at the first validation error instead of collecting all errors")
	cmd.Flags().Bool("status-only", false, "Exit zero on validation failure and gate on the status file alone")
	cmd.Flags().BoolP("verbose", "v", false, "Show extra detail for each validated file")

	return cmd
}
