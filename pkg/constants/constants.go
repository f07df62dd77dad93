// Package constants holds the shared configuration values for control-file
// validation: naming conventions, environment sets, and CI wiring.
package constants

const (
	// ControlFilePrefix is the required filename prefix for control files.
	ControlFilePrefix = "td-"

	// DefaultRootDir is the repository directory holding the per-environment
	// control-file tree.
	DefaultRootDir = "infrastructure"

	// ArchivedDirName is excluded from control-file discovery.
	ArchivedDirName = "Archived"

	// ValidationWorkflowFile is the CI workflow that invokes this tool; it is
	// excluded from discovery so the tool never validates its own trigger.
	ValidationWorkflowFile = ".github/workflows/validate_control_files.yml"

	// StatusFileEnvVar names the environment variable that carries the
	// status-file path in CI runs.
	StatusFileEnvVar = "VALIDATION_STATUS"

	// StatusErrorMarker is the literal written to the status file on the
	// first validation failure. Success is signalled by leaving the file
	// untouched.
	StatusErrorMarker = "error"

	// AppConfigSkipMarker marks listed files that are not RBAC control files
	// and are skipped during per-file content validation.
	AppConfigSkipMarker = "appconfig"
)

// StructureEnvironments is the environment set enforced by the structural
// schema: the tree must contain exactly these top-level directories.
var StructureEnvironments = []string{"dev", "pat", "prod"}

// AllowedEnvironments is the broader environment set recognized for naming
// purposes. It is intentionally kept separate from StructureEnvironments;
// the two sets do not agree and each check takes its own set.
var AllowedEnvironments = []string{"englab", "qa", "dev", "pat", "prod"}
