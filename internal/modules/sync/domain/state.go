package domain

// ConnectionState tracks the feed connection lifecycle. Transitions:
// Disconnected -> Connecting (connect or retry timer) -> Connected (stream
// open) -> Disconnected (error, suspend or manual disconnect).
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}
