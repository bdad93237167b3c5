package referenceframe

import (
	"github.com/pkg/errors"
)

// NewNodeMissingError is used when a node is looked up by a name the hierarchy does not hold.
func NewNodeMissingError(name string) error {
	return errors.Errorf("node %q not in hierarchy", name)
}

// NewParentNodeMissingError is used when a node is added under a parent that does not exist.
func NewParentNodeMissingError(name, parent string) error {
	return errors.Errorf("cannot add node %q: parent %q not in hierarchy", name, parent)
}

// NewDuplicateNodeError is used when a node name is already taken.
func NewDuplicateNodeError(name string) error {
	return errors.Errorf("node %q already exists", name)
}

// NewChainExceedsHierarchyError is used when a chain walk runs past the top of the hierarchy.
func NewChainExceedsHierarchyError(effector string, length int) error {
	return errors.Errorf("chain of %d segments ending at %q reaches past the world", length, effector)
}
