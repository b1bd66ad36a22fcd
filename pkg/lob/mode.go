package lob

// Mode selects the access mode passed to lo_open.
//
// PostgreSQL does not distinguish ModeWrite from ModeReadWrite: both grant
// full read/write access on the descriptor. Only ModeRead is restricted
// server-side.
type Mode int32

const (
	// ModeRead opens the object for reading only.
	ModeRead Mode = 0x00040000

	// ModeWrite opens the object for writing.
	ModeWrite Mode = 0x00020000

	// ModeReadWrite opens the object for reading and writing.
	ModeReadWrite Mode = ModeRead | ModeWrite
)

// String returns the mode name for logging.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeReadWrite:
		return "read-write"
	default:
		return "invalid"
	}
}
