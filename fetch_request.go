package kafunk

// FetchRequest asks for new records on a single (topic, partition) starting
// at Offset, per spec.md §4.3 step 2. ReplicaID is always -1 (a normal
// consumer, not a follower replica).
type FetchRequest struct {
	ReplicaID   int32
	MaxWaitTime int32 // milliseconds
	MinBytes    int32
	Topic       string
	Partition   int32
	Offset      int64
	BufferBytes int32
}

func (r *FetchRequest) key() int16    { return 1 }
func (r *FetchRequest) version() int16 { return 0 }
