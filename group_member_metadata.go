package kafunk

// GroupMemberMetadata is the opaque "range" protocol metadata blob each
// member advertises when it joins, per spec.md §4.6 step 3
// ("metadata{version=0, topics, userdata=empty}").
type GroupMemberMetadata struct {
	Version  int16
	Topics   []string
	UserData []byte
}

func (m *GroupMemberMetadata) encode() []byte {
	pe := &packetEncoder{}
	pe.putInt16(m.Version)
	pe.putArrayLength(len(m.Topics))
	for _, t := range m.Topics {
		pe.putString(t)
	}
	pe.putBytes(m.UserData)
	return pe.bytes()
}

func decodeGroupMemberMetadata(b []byte) (*GroupMemberMetadata, error) {
	pd := newPacketDecoder(b)
	m := &GroupMemberMetadata{}
	var err error
	if m.Version, err = pd.getInt16(); err != nil {
		return nil, err
	}
	n, err := pd.getArrayLength()
	if err != nil {
		return nil, err
	}
	m.Topics = make([]string, n)
	for i := 0; i < n; i++ {
		if m.Topics[i], err = pd.getString(); err != nil {
			return nil, err
		}
	}
	if m.UserData, err = pd.getBytes(); err != nil {
		return nil, err
	}
	return m, nil
}

// GroupMemberAssignment is the opaque per-member assignment blob the leader
// computes and the coordinator relays back through SyncGroup, per spec.md
// §4.6 step 8.
type GroupMemberAssignment struct {
	Version      int16
	AssignedTopicPartitions map[string][]int32
	UserData     []byte
}

func (a *GroupMemberAssignment) encode() []byte {
	pe := &packetEncoder{}
	pe.putInt16(a.Version)
	pe.putArrayLength(len(a.AssignedTopicPartitions))
	for topic, partitions := range a.AssignedTopicPartitions {
		pe.putString(topic)
		pe.putArrayLength(len(partitions))
		for _, p := range partitions {
			pe.putInt32(p)
		}
	}
	pe.putBytes(a.UserData)
	return pe.bytes()
}

func decodeGroupMemberAssignment(b []byte) (*GroupMemberAssignment, error) {
	pd := newPacketDecoder(b)
	a := &GroupMemberAssignment{AssignedTopicPartitions: map[string][]int32{}}
	var err error
	if a.Version, err = pd.getInt16(); err != nil {
		return nil, err
	}
	topicCount, err := pd.getArrayLength()
	if err != nil {
		return nil, err
	}
	for i := 0; i < topicCount; i++ {
		topic, err := pd.getString()
		if err != nil {
			return nil, err
		}
		partitionCount, err := pd.getArrayLength()
		if err != nil {
			return nil, err
		}
		partitions := make([]int32, partitionCount)
		for j := 0; j < partitionCount; j++ {
			if partitions[j], err = pd.getInt32(); err != nil {
				return nil, err
			}
		}
		a.AssignedTopicPartitions[topic] = partitions
	}
	if a.UserData, err = pd.getBytes(); err != nil {
		return nil, err
	}
	return a, nil
}

// partitionCount totals the partitions assigned across all topics.
func (a *GroupMemberAssignment) partitionCount() int {
	n := 0
	for _, partitions := range a.AssignedTopicPartitions {
		n += len(partitions)
	}
	return n
}
