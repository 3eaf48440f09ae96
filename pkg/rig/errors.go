package rig

import "errors"

var (
	// ErrNoRoot is returned when a bone set has no parentless bone.
	ErrNoRoot = errors.New("rig has no root bone")

	// ErrMultipleRoots is returned when more than one bone has no parent.
	ErrMultipleRoots = errors.New("rig has multiple root bones")

	// ErrMissingParent is returned when a bone references an unknown parent.
	ErrMissingParent = errors.New("bone parent does not exist")

	// ErrDuplicateBone is returned when two bones share an id.
	ErrDuplicateBone = errors.New("duplicate bone id")

	// ErrCycle is returned when the parent chain loops.
	ErrCycle = errors.New("bone graph contains a cycle")
)
