// Package structure validates the control-file repository layout: it walks
// the per-environment directory tree into a nested mapping, enforces the
// filename convention, and checks the mapping against the structural schema.
package structure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdops/controlcheck/pkg/logger"
)

var walkLog = logger.New("structure:walk")

// Tree is the in-memory shape of the control-file repository: directory
// names map to nested Trees, except assignments/definitions leaves, which
// map to an empty list regardless of the files they hold. Filenames are
// checked during traversal and file content per listed file, so the shape
// check sees topology only.
type Tree map[string]any

// Violation is a single recorded structural failure.
type Violation struct {
	Path   string
	Reason string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Reason)
}

// leafDirNames are the only directories allowed to contain files.
var leafDirNames = map[string]bool{
	"assignments": true,
	"definitions": true,
}

// BuildTree walks the tree rooted at root, skipping hidden entries, and
// returns its nested mapping together with any placement or naming
// violations found along the way. The returned error reports I/O problems
// only; rule failures are returned as violations.
func BuildTree(root string) (Tree, []Violation, error) {
	walkLog.Printf("Building structure tree: root=%s", root)
	var violations []Violation
	tree, err := walkDir(root, &violations)
	if err != nil {
		return nil, nil, err
	}
	walkLog.Printf("Structure tree built: entries=%d, violations=%d", len(tree), len(violations))
	return tree, violations, nil
}

func walkDir(dir string, violations *[]Violation) (Tree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	tree := Tree{}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			walkLog.Printf("Skipping hidden entry: %s", name)
			continue
		}
		path := filepath.Join(dir, name)

		if !entry.IsDir() {
			*violations = append(*violations, Violation{
				Path:   path,
				Reason: "file is outside an assignments or definitions directory",
			})
			continue
		}

		if leafDirNames[name] {
			if err := validateLeafFiles(path, violations); err != nil {
				return nil, err
			}
			// Leaves are always represented empty so a populated
			// repository still matches the empty-or-null leaf schema.
			tree[name] = []string{}
			continue
		}

		sub, err := walkDir(path, violations)
		if err != nil {
			return nil, err
		}
		tree[name] = sub
	}
	return tree, nil
}

// validateLeafFiles checks every file of a leaf directory against the
// extension and naming rules, recording failures as violations.
func validateLeafFiles(dir string, violations *[]Violation) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			*violations = append(*violations, Violation{
				Path:   path,
				Reason: "unexpected directory inside a leaf directory",
			})
			continue
		}

		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			*violations = append(*violations, Violation{
				Path:   path,
				Reason: "file must have a .yaml or .yml extension",
			})
			continue
		}

		if ok, reason := ValidateFilename(name); !ok {
			*violations = append(*violations, Violation{Path: path, Reason: reason})
		}
	}
	return nil
}
