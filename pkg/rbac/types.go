// Package rbac defines the RBAC control-file document model and validates
// document content against its schema. Validation is structural only: scopes
// and actions are never resolved against any cloud taxonomy.
package rbac

// RoleDefinition is a parsed RBAC role definition document.
type RoleDefinition struct {
	RoleName         string          `yaml:"roleName" json:"roleName"`
	Description      string          `yaml:"description" json:"description"`
	AssignableScopes []string        `yaml:"assignableScopes" json:"assignableScopes"`
	Permissions      []PermissionSet `yaml:"permissions" json:"permissions"`
}

// PermissionSet is one entry of a role definition's permissions list.
type PermissionSet struct {
	Actions        []string `yaml:"actions" json:"actions"`
	NotActions     []string `yaml:"notActions" json:"notActions"`
	DataActions    []string `yaml:"dataActions" json:"dataActions"`
	NotDataActions []string `yaml:"notDataActions" json:"notDataActions"`
}
