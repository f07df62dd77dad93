package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdops/controlcheck/pkg/console"
	"github.com/tdops/controlcheck/pkg/constants"
	"github.com/tdops/controlcheck/pkg/logger"
)

var discoverLog = logger.New("cli:discover")

// DiscoverControlFiles collects all YAML files under root, excluding any
// Archived directory and the validation workflow file itself.
func DiscoverControlFiles(root string) ([]string, error) {
	discoverLog.Printf("Discovering control files: root=%s", root)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == constants.ArchivedDirName {
				discoverLog.Printf("Skipping archived directory: %s", path)
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.ToSlash(path) == constants.ValidationWorkflowFile {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	discoverLog.Printf("Discovery complete: files=%d", len(files))
	return files, nil
}

// RunDiscovery runs a self-contained validation pass for local use: it
// discovers the control files, writes them to a temporary list file, points
// the session at a temporary status file, runs the full validation, and
// cleans up the temporary artifacts before returning.
func RunDiscovery(config SessionConfig) error {
	files, err := DiscoverControlFiles(config.RootDir)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Discovered %d control file(s) under %s", len(files), config.RootDir)))

	tmpDir, err := os.MkdirTemp("", "controlcheck-")
	if err != nil {
		return fmt.Errorf("cannot create temporary directory: %w", err)
	}
	defer func() {
		discoverLog.Printf("Cleaning up temporary artifacts: %s", tmpDir)
		_ = os.RemoveAll(tmpDir)
	}()

	listFile := filepath.Join(tmpDir, "control_files.txt")
	if err := os.WriteFile(listFile, []byte(strings.Join(files, "\n")), 0o644); err != nil {
		return fmt.Errorf("cannot write temporary files list: %w", err)
	}
	statusFile := filepath.Join(tmpDir, "validation_status")
	if err := os.WriteFile(statusFile, nil, 0o644); err != nil {
		return fmt.Errorf("cannot create temporary status file: %w", err)
	}

	config.StatusFile = statusFile
	session := NewSession(config)
	result := RunValidation(session, files)

	if session.Errored() {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Status file was marked %q", constants.StatusErrorMarker)))
	}
	return result
}
