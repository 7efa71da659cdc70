package tether

// MountState tracks where a binding's component sits in its host
// runtime's render/commit lifecycle.
type MountState int32

const (
	// MountUnknown is the state before the very first run of the
	// tracked callback. Nothing has rendered yet.
	MountUnknown MountState = iota

	// MountPending indicates the first run has executed but the host
	// runtime has not yet committed the render.
	MountPending

	// MountMounted indicates the component's first commit has landed.
	// A binding never leaves this state.
	MountMounted
)

// String returns the string representation of the mount state.
func (s MountState) String() string {
	switch s {
	case MountUnknown:
		return "unknown"
	case MountPending:
		return "pending"
	case MountMounted:
		return "mounted"
	default:
		return "invalid"
	}
}
