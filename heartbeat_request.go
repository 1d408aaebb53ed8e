package kafunk

// HeartbeatRequest is issued periodically by C4 to tell the coordinator this
// member is still alive within the named generation.
type HeartbeatRequest struct {
	GroupID      string
	GenerationID int32
	MemberID     string
}

func (r *HeartbeatRequest) key() int16    { return 12 }
func (r *HeartbeatRequest) version() int16 { return 0 }
