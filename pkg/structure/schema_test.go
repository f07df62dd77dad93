//go:build !integration

package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdops/controlcheck/pkg/constants"
)

func emptyEnv() Tree {
	return Tree{
		"assignments": []string{},
		"definitions": []string{},
	}
}

func TestValidateShapeAccepts(t *testing.T) {
	tree := Tree{
		"dev":  emptyEnv(),
		"pat":  emptyEnv(),
		"prod": emptyEnv(),
	}

	violations, err := ValidateShape(tree, constants.StructureEnvironments)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateShapeNullLeavesAccepted(t *testing.T) {
	tree := Tree{
		"dev":  Tree{"assignments": nil, "definitions": nil},
		"pat":  emptyEnv(),
		"prod": emptyEnv(),
	}

	violations, err := ValidateShape(tree, constants.StructureEnvironments)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateShapeRejects(t *testing.T) {
	tests := []struct {
		name string
		tree Tree
	}{
		{
			name: "missing environment",
			tree: Tree{"dev": emptyEnv(), "pat": emptyEnv()},
		},
		{
			name: "extra environment",
			tree: Tree{
				"dev": emptyEnv(), "pat": emptyEnv(), "prod": emptyEnv(),
				"qa": emptyEnv(),
			},
		},
		{
			name: "missing subfolder",
			tree: Tree{
				"dev":  Tree{"assignments": []string{}},
				"pat":  emptyEnv(),
				"prod": emptyEnv(),
			},
		},
		{
			name: "extra subfolder",
			tree: Tree{
				"dev": Tree{
					"assignments": []string{},
					"definitions": []string{},
					"archived":    []string{},
				},
				"pat":  emptyEnv(),
				"prod": emptyEnv(),
			},
		},
		{
			// BuildTree never emits a populated leaf; this pins the schema's
			// own empty-or-null rule for trees built elsewhere.
			name: "populated leaf",
			tree: Tree{
				"dev": Tree{
					"assignments": []string{},
					"definitions": []string{"td-reader.yaml"},
				},
				"pat":  emptyEnv(),
				"prod": emptyEnv(),
			},
		},
		{
			name: "environment is not an object",
			tree: Tree{
				"dev":  []string{},
				"pat":  emptyEnv(),
				"prod": emptyEnv(),
			},
		},
		{
			name: "empty tree",
			tree: Tree{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations, err := ValidateShape(tt.tree, constants.StructureEnvironments)
			require.NoError(t, err)
			assert.NotEmpty(t, violations, "expected structural violations")
			for _, v := range violations {
				assert.NotEmpty(t, v.Reason)
				assert.NotEmpty(t, v.Path)
			}
		})
	}
}

func TestValidateShapeConfigurableEnvironments(t *testing.T) {
	tree := Tree{
		"englab": emptyEnv(),
		"qa":     emptyEnv(),
	}

	violations, err := ValidateShape(tree, []string{"englab", "qa"})
	require.NoError(t, err)
	assert.Empty(t, violations, "environment set is configurable per check")

	violations, err = ValidateShape(tree, constants.StructureEnvironments)
	require.NoError(t, err)
	assert.NotEmpty(t, violations, "default set rejects the broader tree")
}
