//go:build !integration

package rbac

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRoleDocument = `roleName: Temporary Reader
description: Read-only access for temporary staff
assignableScopes:
  - /subscriptions/example
permissions:
  - actions:
      - "*/read"
    notActions:
      - "*/write"
    dataActions: []
    notDataActions: []
`

func TestValidateDocumentValid(t *testing.T) {
	res := ValidateDocument("td-reader.yaml", []byte(validRoleDocument))
	require.Equal(t, OutcomeValid, res.Outcome, "unexpected outcome: %v", res.Err)
	require.NotNil(t, res.Definition)
	assert.Equal(t, "Temporary Reader", res.Definition.RoleName)
	assert.Equal(t, []string{"/subscriptions/example"}, res.Definition.AssignableScopes)
	require.Len(t, res.Definition.Permissions, 1)
	assert.Equal(t, []string{"*/read"}, res.Definition.Permissions[0].Actions)
	assert.Empty(t, res.Definition.Permissions[0].DataActions)
}

func TestValidateDocumentMalformedYAML(t *testing.T) {
	res := ValidateDocument("td-broken.yaml", []byte("roleName: [unclosed\n"))
	assert.Equal(t, OutcomeParseError, res.Outcome)
	assert.Error(t, res.Err)
}

func TestValidateDocumentSchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing permissions",
			doc: `roleName: Reader
description: desc
assignableScopes: []
`,
		},
		{
			name: "roleName starts with digit",
			doc: `roleName: 1Reader
description: desc
assignableScopes: []
permissions: []
`,
		},
		{
			name: "roleName wrong type",
			doc: `roleName: 42
description: desc
assignableScopes: []
permissions: []
`,
		},
		{
			name: "assignableScopes not a list",
			doc: `roleName: Reader
description: desc
assignableScopes: /subscriptions/example
permissions: []
`,
		},
		{
			name: "permission entry missing fields",
			doc: `roleName: Reader
description: desc
assignableScopes: []
permissions:
  - actions: []
`,
		},
		{
			name: "unknown top-level field",
			doc: `roleName: Reader
description: desc
assignableScopes: []
permissions: []
extra: true
`,
		},
		{
			name: "non-string action",
			doc: `roleName: Reader
description: desc
assignableScopes: []
permissions:
  - actions: [1]
    notActions: []
    dataActions: []
    notDataActions: []
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateDocument("td-doc.yaml", []byte(tt.doc))
			assert.Equal(t, OutcomeSchemaError, res.Outcome)
			assert.Error(t, res.Err)
		})
	}
}

func TestValidateDocumentRoleNameWithSpacesAndHyphens(t *testing.T) {
	doc := `roleName: td-Temp Reader_x
description: desc
assignableScopes: []
permissions: []
`
	// Hyphens, spaces, and underscores are all allowed past the first
	// character of a role name.
	res := ValidateDocument("td-doc.yaml", []byte(doc))
	assert.Equal(t, OutcomeValid, res.Outcome, "unexpected outcome: %v", res.Err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "td-reader.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validRoleDocument), 0o644))

	res := ValidateFile(path)
	assert.Equal(t, OutcomeValid, res.Outcome)

	res = ValidateFile(filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, OutcomeParseError, res.Outcome)
}

func TestCheckFilenameToken(t *testing.T) {
	tests := []struct {
		path  string
		valid bool
	}{
		{"infrastructure/dev/definitions/td-reader.yaml", true},
		{"td-reader.yaml", true},
		{"td_reader.yaml", true},
		{"reader.yaml", false},
		{"tdx-reader.yaml", false},
		{"infrastructure/dev/definitions/reader-td.yaml", false},
		{"td.yaml", false},
	}

	for _, tt := range tests {
		err := CheckFilenameToken(tt.path)
		if tt.valid {
			assert.NoError(t, err, "path %q", tt.path)
		} else {
			assert.Error(t, err, "path %q", tt.path)
		}
	}
}
