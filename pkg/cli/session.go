// Package cli implements the controlcheck commands: the validation session,
// status reporting, discovery mode, and the validate command itself.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/tdops/controlcheck/pkg/console"
	"github.com/tdops/controlcheck/pkg/constants"
	"github.com/tdops/controlcheck/pkg/logger"
)

var sessionLog = logger.New("cli:session")

// ErrValidationFailed marks a run that recorded at least one validation
// failure. main maps it to a dedicated exit code.
var ErrValidationFailed = errors.New("validation failed")

// errStopRun signals a fail-fast stop after the first recorded failure.
var errStopRun = errors.New("stopping at first validation failure")

// SessionConfig carries the settings for one validation run. All state is
// scoped to the session so runs stay test-isolated.
type SessionConfig struct {
	// RootDir is the control-file tree to validate.
	RootDir string
	// StatusFile receives the error marker on the first failure. Empty
	// disables the status write (discovery mode sets a temporary path).
	StatusFile string
	// StructureEnvironments is the environment set enforced by the
	// structural schema.
	StructureEnvironments []string
	// AllowedEnvironments is the broader environment set recognized for
	// naming. Kept separate from StructureEnvironments on purpose.
	AllowedEnvironments []string
	// FailFast stops the run at the first recorded failure.
	FailFast bool
	// StatusOnly suppresses the non-zero exit on validation failure; the
	// status file then remains the only gate signal.
	StatusOnly bool
	// Verbose enables extra console detail.
	Verbose bool
}

// DefaultConfig returns a SessionConfig with the conventional defaults.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		RootDir:               constants.DefaultRootDir,
		StructureEnvironments: constants.StructureEnvironments,
		AllowedEnvironments:   constants.AllowedEnvironments,
	}
}

// ValidationSession tracks failures across one validation run and owns the
// status-file write. State moves from clean to errored on the first failure
// and never back.
type ValidationSession struct {
	config        SessionConfig
	errored       bool
	failures      int
	statusWritten bool
}

// NewSession creates a session for one validation run.
func NewSession(config SessionConfig) *ValidationSession {
	sessionLog.Printf("Creating validation session: root=%s, status_file=%s, fail_fast=%v",
		config.RootDir, config.StatusFile, config.FailFast)
	return &ValidationSession{config: config}
}

// Config returns the session configuration.
func (s *ValidationSession) Config() SessionConfig {
	return s.config
}

// RecordFailure prints the diagnostic, writes the status marker if this is
// the first failure of the run, and in fail-fast mode returns errStopRun to
// halt the caller. Later failures print but never re-write the status file.
func (s *ValidationSession) RecordFailure(err error) error {
	if err == nil {
		return nil
	}
	s.failures++
	fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))

	if !s.errored {
		s.errored = true
		s.writeStatus()
	}

	if s.config.FailFast {
		sessionLog.Print("Fail-fast enabled, stopping run")
		return errStopRun
	}
	return nil
}

func (s *ValidationSession) writeStatus() {
	if s.statusWritten || s.config.StatusFile == "" {
		return
	}
	s.statusWritten = true
	sessionLog.Printf("Writing status marker: file=%s", s.config.StatusFile)
	if err := os.WriteFile(s.config.StatusFile, []byte(constants.StatusErrorMarker), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("Failed to write status file %s: %v", s.config.StatusFile, err)))
	}
}

// Errored reports whether any failure has been recorded this run.
func (s *ValidationSession) Errored() bool {
	return s.errored
}

// FailureCount returns the number of failures recorded this run.
func (s *ValidationSession) FailureCount() int {
	return s.failures
}

// Result returns the final outcome of the run: nil when clean, and
// ErrValidationFailed when failures were recorded, unless status-only mode
// leaves gating to the status file.
func (s *ValidationSession) Result() error {
	if !s.errored {
		return nil
	}
	if s.config.StatusOnly {
		sessionLog.Printf("Run errored but status-only mode is set: failures=%d", s.failures)
		return nil
	}
	return fmt.Errorf("%w: %d check(s) failed", ErrValidationFailed, s.failures)
}
