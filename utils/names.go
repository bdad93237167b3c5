package utils

import (
	"regexp"

	"github.com/pkg/errors"
)

// MaxNameLength bounds joint, target and obstacle names.
const MaxNameLength = 60

// ValidNameRegex matches names that may be used in a scene. Dots are allowed so rigs can use
// side suffixes like "arm.L".
var ValidNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][-.\w]{0,59}$`)

// ErrInvalidName explains why name does not match ValidNameRegex.
func ErrInvalidName(name string) error {
	if len(name) > MaxNameLength {
		return errors.Errorf("name %q is longer than %d characters", name, MaxNameLength)
	}
	return errors.Errorf("name %q may only contain letters, digits, dots, dashes and underscores, starting with a letter or digit", name)
}
