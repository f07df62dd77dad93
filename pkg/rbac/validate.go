package rbac

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/tdops/controlcheck/pkg/logger"
)

var validateLog = logger.New("rbac:validate")

//go:embed schemas/role_definition.json
var roleDefinitionSchema []byte

// Outcome classifies the result of validating one document.
type Outcome int

const (
	// OutcomeValid means the document parsed and matched the schema.
	OutcomeValid Outcome = iota
	// OutcomeParseError means the file could not be read or parsed as YAML.
	OutcomeParseError
	// OutcomeSchemaError means the YAML parsed but did not match the role
	// definition schema.
	OutcomeSchemaError
)

// Result is the outcome of validating one control file's content.
type Result struct {
	Path       string
	Outcome    Outcome
	Err        error
	Definition *RoleDefinition
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(roleDefinitionSchema))
	if err != nil {
		return nil, fmt.Errorf("cannot parse role definition schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("role_definition.json", doc); err != nil {
		return nil, fmt.Errorf("cannot register role definition schema: %w", err)
	}
	sch, err := compiler.Compile("role_definition.json")
	if err != nil {
		return nil, fmt.Errorf("cannot compile role definition schema: %w", err)
	}
	return sch, nil
})

// ValidateFile reads and validates one control file as an RBAC role
// definition.
func ValidateFile(path string) Result {
	validateLog.Printf("Validating control file content: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Outcome: OutcomeParseError, Err: fmt.Errorf("cannot read file: %w", err)}
	}
	return ValidateDocument(path, data)
}

// ValidateDocument validates raw YAML content as an RBAC role definition.
// Parse failures and schema mismatches are reported as distinct outcomes.
func ValidateDocument(path string, data []byte) Result {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		validateLog.Printf("YAML parse failure: path=%s, err=%v", path, err)
		return Result{Path: path, Outcome: OutcomeParseError, Err: fmt.Errorf("invalid YAML: %w", err)}
	}

	sch, err := compiledSchema()
	if err != nil {
		return Result{Path: path, Outcome: OutcomeSchemaError, Err: err}
	}

	normalized, err := normalizeJSON(doc)
	if err != nil {
		return Result{Path: path, Outcome: OutcomeParseError, Err: fmt.Errorf("cannot normalize document: %w", err)}
	}

	if err := sch.Validate(normalized); err != nil {
		validateLog.Printf("Schema mismatch: path=%s", path)
		return Result{Path: path, Outcome: OutcomeSchemaError, Err: err}
	}

	var def RoleDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		// Schema validation passed, so a typed decode failure means the
		// document model and the schema have drifted apart.
		return Result{Path: path, Outcome: OutcomeSchemaError, Err: fmt.Errorf("cannot decode role definition: %w", err)}
	}

	validateLog.Printf("Document valid: path=%s, roleName=%s", path, def.RoleName)
	return Result{Path: path, Outcome: OutcomeValid, Definition: &def}
}

// normalizeJSON round-trips a parsed YAML document through JSON so the
// schema validator sees the representation it expects.
func normalizeJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}

// CheckFilenameToken checks that the base filename's first token, split on
// hyphens and underscores, is "td". This runs independently of content
// validation.
func CheckFilenameToken(path string) error {
	base := filepath.Base(path)
	first := base
	if idx := strings.IndexAny(base, "-_"); idx >= 0 {
		first = base[:idx]
	}
	if first != "td" {
		return fmt.Errorf("%s: filename must start with the 'td' token, got %q", path, first)
	}
	return nil
}
