package utils

import (
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestValidNames(t *testing.T) {
	for _, name := range []string{"elbow_1", "arm.L", "2nd-link", "a"} {
		test.That(t, ValidNameRegex.MatchString(name), test.ShouldBeTrue)
	}
	for _, name := range []string{"", "-elbow", ".hidden", "upper arm", strings.Repeat("a", MaxNameLength+1)} {
		test.That(t, ValidNameRegex.MatchString(name), test.ShouldBeFalse)
	}
}

func TestErrInvalidName(t *testing.T) {
	test.That(t, ErrInvalidName("-elbow").Error(), test.ShouldContainSubstring, "starting with a letter or digit")
	test.That(t, ErrInvalidName(strings.Repeat("a", MaxNameLength+1)).Error(), test.ShouldContainSubstring, "longer than 60 characters")
}
