//go:build !integration

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdops/controlcheck/pkg/constants"
)

// TestNewValidateCommand tests that the validate command is created correctly
func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	require.NotNil(t, cmd, "NewValidateCommand should return a non-nil command")
	assert.Equal(t, "validate", cmd.Name(), "Command name should be 'validate'")
	assert.NotEmpty(t, cmd.Short, "Command should have a short description")
	assert.NotEmpty(t, cmd.Long, "Command should have a long description")

	require.NotNil(t, cmd.Flags().Lookup("discover"), "validate command should have a --discover flag")
	assert.Equal(t, "d", cmd.Flags().Lookup("discover").Shorthand, "--discover flag should have -d shorthand")
	require.NotNil(t, cmd.Flags().Lookup("root"), "validate command should have a --root flag")
	assert.Equal(t, constants.DefaultRootDir, cmd.Flags().Lookup("root").DefValue)
	require.NotNil(t, cmd.Flags().Lookup("status-file"), "validate command should have a --status-file flag")
	require.NotNil(t, cmd.Flags().Lookup("fail-fast"), "validate command should have a --fail-fast flag")
	require.NotNil(t, cmd.Flags().Lookup("status-only"), "validate command should have a --status-only flag")
	require.NotNil(t, cmd.Flags().Lookup("verbose"), "validate command should have a --verbose flag")
}

func TestValidateCommandRequiresFilesListOrDiscover(t *testing.T) {
	t.Setenv(constants.StatusFileEnvVar, "")

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "files-list argument")
}

func TestValidateCommandRequiresStatusEnvVar(t *testing.T) {
	t.Setenv(constants.StatusFileEnvVar, "")

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{"some_list.txt"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), constants.StatusFileEnvVar)
}

func TestValidateCommandMissingFilesList(t *testing.T) {
	t.Setenv(constants.StatusFileEnvVar, "/tmp/validation_status")

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{"does_not_exist.txt"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "files list not found")
}

func TestValidateCommandRejectsEmptyFilesList(t *testing.T) {
	t.Setenv(constants.StatusFileEnvVar, filepath.Join(t.TempDir(), "status"))

	listPath := filepath.Join(t.TempDir(), "changed_files.txt")
	require.NoError(t, os.WriteFile(listPath, []byte("\n  \n"), 0o644))

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{listPath})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
	assert.NotErrorIs(t, err, ErrValidationFailed, "an empty list is a usage error, not a validation failure")
}

func TestValidateCommandDiscoverRejectsArgument(t *testing.T) {
	cmd := NewValidateCommand()
	cmd.SetArgs([]string{"--discover", "some_list.txt"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--discover")
}
