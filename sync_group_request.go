package kafunk

// SyncGroupRequest distributes the leader's computed assignment (or, from a
// follower, an empty assignment) back through the coordinator so every
// member receives its own slice in the matching SyncGroupResponse, per
// spec.md §4.6 steps 5-6.
type SyncGroupRequest struct {
	GroupID      string
	GenerationID int32
	MemberID     string
	// GroupAssignments is populated by the leader only: one entry per
	// member, each carrying that member's assigned partitions. A follower
	// sends a nil/empty slice.
	GroupAssignments []SyncGroupAssignment
}

// SyncGroupAssignment pairs a member id with its computed assignment blob.
// Only ever populated by the request the leader sends.
type SyncGroupAssignment struct {
	MemberID   string
	Assignment *GroupMemberAssignment
}

func (r *SyncGroupRequest) key() int16    { return 14 }
func (r *SyncGroupRequest) version() int16 { return 0 }
