package structure

import (
	"strings"

	"github.com/tdops/controlcheck/pkg/constants"
)

// ValidateFilename checks a control filename against the naming convention:
// a "td-" prefix, a ".yaml" or ".yml" extension, and a name body restricted
// to letters and hyphens. Checks run in order and stop at the first failure.
// Accepted names match ^td-[A-Za-z-]+\.(yaml|yml)$ exactly.
func ValidateFilename(name string) (bool, string) {
	if !strings.HasPrefix(name, constants.ControlFilePrefix) {
		return false, "filename must start with the '" + constants.ControlFilePrefix + "' prefix"
	}

	body := strings.TrimPrefix(name, constants.ControlFilePrefix)
	switch {
	case strings.HasSuffix(body, ".yaml"):
		body = strings.TrimSuffix(body, ".yaml")
	case strings.HasSuffix(body, ".yml"):
		body = strings.TrimSuffix(body, ".yml")
	default:
		return false, "filename must end with .yaml or .yml"
	}

	if body == "" {
		return false, "filename has no name body between prefix and extension"
	}
	for _, r := range body {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		return false, "filename body may contain only letters and hyphens"
	}
	return true, ""
}
