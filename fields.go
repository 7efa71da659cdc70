package tether

import "github.com/zoobzio/capitan"

// Field keys for Binding events.
var (
	// KeyMount is the current mount state of the binding.
	KeyMount = capitan.NewStringKey("mount")

	// KeyOldMount is the previous mount state before a transition.
	KeyOldMount = capitan.NewStringKey("old_mount")

	// KeyNewMount is the new mount state after a transition.
	KeyNewMount = capitan.NewStringKey("new_mount")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyOp is the operation during which a failure occurred.
	KeyOp = capitan.NewStringKey("op")

	// KeyGuardDelay is the configured leak-guard delay.
	KeyGuardDelay = capitan.NewDurationKey("guard_delay")

	// KeyDepCount is the length of the dependency list, or -1 when the
	// list is absent (always-recreate semantics).
	KeyDepCount = capitan.NewIntKey("dep_count")

	// KeyPosition names where inside the result a non-reactive value was
	// found, e.g. "result", "result[2]", "result.Cursor".
	KeyPosition = capitan.NewStringKey("position")
)
