package structure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tdops/controlcheck/pkg/logger"
)

var schemaLog = logger.New("structure:schema")

var errorPrinter = message.NewPrinter(language.English)

// buildShapeSchema constructs the structural JSON schema for a given
// environment set: exactly those environments at top level, each an object
// holding assignments and definitions whose values are empty or null.
func buildShapeSchema(environments []string) map[string]any {
	leaf := map[string]any{
		"type":     []any{"array", "null"},
		"maxItems": 0,
	}
	envSchema := map[string]any{
		"type":                 "object",
		"required":             []any{"assignments", "definitions"},
		"additionalProperties": false,
		"properties": map[string]any{
			"assignments": leaf,
			"definitions": leaf,
		},
	}

	required := make([]any, 0, len(environments))
	properties := map[string]any{}
	for _, env := range environments {
		required = append(required, env)
		properties[env] = envSchema
	}

	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"required":             required,
		"additionalProperties": false,
		"properties":           properties,
	}
}

// ValidateShape checks the walked tree against the structural schema for the
// given environment set. Every schema deviation is returned as its own
// violation; the error return reports schema compilation problems only.
func ValidateShape(tree Tree, environments []string) ([]Violation, error) {
	schemaLog.Printf("Validating structure shape: environments=%v", environments)

	sch, err := compileShapeSchema(environments)
	if err != nil {
		return nil, err
	}

	doc, err := normalizeJSON(tree)
	if err != nil {
		return nil, fmt.Errorf("cannot normalize structure tree: %w", err)
	}

	err = sch.Validate(doc)
	if err == nil {
		schemaLog.Print("Structure shape is valid")
		return nil, nil
	}

	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, err
	}

	var violations []Violation
	for _, cause := range flattenCauses(verr) {
		violations = append(violations, Violation{
			Path:   instancePath(cause.InstanceLocation),
			Reason: cause.ErrorKind.LocalizedString(errorPrinter),
		})
	}
	schemaLog.Printf("Structure shape invalid: violations=%d", len(violations))
	return violations, nil
}

func compileShapeSchema(environments []string) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(buildShapeSchema(environments))
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("structure.json", doc); err != nil {
		return nil, fmt.Errorf("cannot register structure schema: %w", err)
	}
	sch, err := compiler.Compile("structure.json")
	if err != nil {
		return nil, fmt.Errorf("cannot compile structure schema: %w", err)
	}
	return sch, nil
}

// normalizeJSON round-trips a value through JSON so the schema validator
// sees the same representation it would get from a JSON document.
func normalizeJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}

// flattenCauses walks a validation error to its leaf causes.
func flattenCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, flattenCauses(cause)...)
	}
	return leaves
}

func instancePath(location []string) string {
	if len(location) == 0 {
		return "/"
	}
	return "/" + strings.Join(location, "/")
}
