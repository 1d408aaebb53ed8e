package kafunk

// HeartbeatResponse reports whether this member's generation and membership
// are still current.
type HeartbeatResponse struct {
	Err KError
}

func (r *HeartbeatResponse) key() int16    { return 12 }
func (r *HeartbeatResponse) version() int16 { return 0 }
