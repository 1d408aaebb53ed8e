package kafunk

// OffsetFetchRequest asks the coordinator for the last committed offset of
// one or more (topic, partition) pairs within a group, the first step of
// the Offset Resolver (C2).
type OffsetFetchRequest struct {
	GroupID string
	Topic   string
	Partitions []int32
}

func (r *OffsetFetchRequest) key() int16    { return 9 }
func (r *OffsetFetchRequest) version() int16 { return 1 }
