package kafunk

// JoinGroupRequest asks the group coordinator to add this member to a
// consumer group, per spec.md §4.6 step 3. MemberID is empty on a member's
// very first join, or after a reset-member rejoin.
type JoinGroupRequest struct {
	GroupID        string
	SessionTimeout int32 // milliseconds
	MemberID       string
	ProtocolType   string // always "consumer"
	GroupProtocols []GroupProtocol
}

// GroupProtocol names one assignment protocol this member supports, paired
// with its opaque, protocol-specific metadata blob. This client only ever
// offers "range".
type GroupProtocol struct {
	Name     string
	Metadata *GroupMemberMetadata
}

func (r *JoinGroupRequest) key() int16    { return 11 }
func (r *JoinGroupRequest) version() int16 { return 0 }
