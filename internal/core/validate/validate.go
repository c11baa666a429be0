// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
)

// ProfileName validates a profile name is non-empty after trimming whitespace
// and safe to use as a file name.
func ProfileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("profile name %q is reserved", name)
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("profile name %q must not contain path separators", name)
	}
	return nil
}
