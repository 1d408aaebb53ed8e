package kafunk

// SyncGroupResponse carries this member's own assignment, as decided by the
// leader and distributed by the coordinator.
type SyncGroupResponse struct {
	Err        KError
	Assignment *GroupMemberAssignment
}

func (r *SyncGroupResponse) key() int16    { return 14 }
func (r *SyncGroupResponse) version() int16 { return 0 }
