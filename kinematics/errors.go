package kinematics

import (
	"github.com/pkg/errors"
)

// ErrMissingTarget is returned when a chain is built without a target transform.
var ErrMissingTarget = errors.New("target transform is nil")

// NewChainTooShortError is used when fewer than two joints are supplied for a chain.
func NewChainTooShortError(joints int) error {
	return errors.Errorf("a chain needs at least 2 joints but got %d", joints)
}

// NewJointCountMismatchError is used when the host hands over a joint list whose size does not
// match the configured chain length.
func NewJointCountMismatchError(length, joints int) error {
	return errors.Errorf("chain length %d expects %d joints but got %d", length, length+1, joints)
}

// NewNilJointError is used when a joint handle in the chain is nil.
func NewNilJointError(index int) error {
	return errors.Errorf("joint %d is nil", index)
}
