package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tdops/controlcheck/pkg/console"
	"github.com/tdops/controlcheck/pkg/constants"
	"github.com/tdops/controlcheck/pkg/logger"
	"github.com/tdops/controlcheck/pkg/rbac"
	"github.com/tdops/controlcheck/pkg/structure"
)

var runLog = logger.New("cli:run")

// RunValidation performs one full validation pass: structural checks over
// the control-file tree, then content validation of each listed file. All
// failures are recorded through the session; only I/O problems outside the
// validation rules surface as direct errors.
func RunValidation(session *ValidationSession, listedFiles []string) error {
	if err := runStructureChecks(session); err != nil {
		if errors.Is(err, errStopRun) {
			return session.Result()
		}
		return err
	}
	if err := runContentChecks(session, listedFiles); err != nil {
		if errors.Is(err, errStopRun) {
			return session.Result()
		}
		return err
	}

	if !session.Errored() {
		fmt.Println(console.FormatSuccessMessage("All validation checks passed"))
	}
	return session.Result()
}

// runStructureChecks walks the tree and validates its shape.
func runStructureChecks(session *ValidationSession) error {
	root := session.Config().RootDir
	runLog.Printf("Running structure checks: root=%s", root)
	fmt.Println(console.FormatInfoMessage("Validating folder structure under " + root))

	tree, violations, err := structure.BuildTree(root)
	if err != nil {
		return fmt.Errorf("cannot read control-file tree: %w", err)
	}
	for _, v := range violations {
		if err := session.RecordFailure(v); err != nil {
			return err
		}
	}

	shapeViolations, err := structure.ValidateShape(tree, session.Config().StructureEnvironments)
	if err != nil {
		return fmt.Errorf("structure schema check failed: %w", err)
	}
	for _, v := range shapeViolations {
		if err := session.RecordFailure(fmt.Errorf("folder structure %s", v)); err != nil {
			return err
		}
	}

	if len(violations) == 0 && len(shapeViolations) == 0 {
		fmt.Println(console.FormatSuccessMessage("Folder structure matches the expected layout"))
	}
	return nil
}

// runContentChecks validates each listed file as an RBAC role definition.
// The filename-token check and the content check run independently; a bad
// name never skips the content validation.
func runContentChecks(session *ValidationSession, files []string) error {
	runLog.Printf("Running content checks: files=%d", len(files))
	for _, path := range files {
		if strings.Contains(path, constants.AppConfigSkipMarker) {
			fmt.Println(console.FormatInfoMessage("Skipping non-control file " + path))
			continue
		}

		if err := rbac.CheckFilenameToken(path); err != nil {
			if err := session.RecordFailure(err); err != nil {
				return err
			}
		}

		res := rbac.ValidateFile(path)
		switch res.Outcome {
		case rbac.OutcomeParseError:
			if err := session.RecordFailure(fmt.Errorf("%s: parsing error: %v", path, res.Err)); err != nil {
				return err
			}
		case rbac.OutcomeSchemaError:
			if err := session.RecordFailure(fmt.Errorf("%s: schema validation error: %v", path, res.Err)); err != nil {
				return err
			}
		default:
			fmt.Println(console.FormatSuccessMessage(path + " is a valid role definition"))
			if session.Config().Verbose && res.Definition != nil {
				fmt.Println(console.FormatVerboseMessage("  roleName: " + res.Definition.RoleName))
			}
		}
	}
	return nil
}
