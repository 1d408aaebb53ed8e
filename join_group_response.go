package kafunk

// JoinGroupResponse is the coordinator's reply to a JoinGroupRequest. A
// non-empty Members list means this client has been elected leader and must
// compute the assignment itself (spec.md §4.6 step 5); an empty list means
// follower (step 6).
type JoinGroupResponse struct {
	Err          KError
	GenerationID int32
	GroupProtocol string // the protocol name the coordinator selected ("range")
	LeaderID     string
	MemberID     string
	Members      []JoinGroupMember
}

// JoinGroupMember is one entry of the leader-only Members list: a group
// member and the "range" metadata it advertised when it joined.
type JoinGroupMember struct {
	MemberID string
	Metadata *GroupMemberMetadata
}

func (r *JoinGroupResponse) key() int16    { return 11 }
func (r *JoinGroupResponse) version() int16 { return 0 }
