package kafunk

// OffsetTime selects which sentinel timestamp an OffsetRequest resolves
// against; it mirrors InitialOffsetPolicy but also allows an explicit
// millisecond timestamp for the TimestampOffset case.
type OffsetTime int64

const (
	// OffsetTimeLatest asks for the offset of the next record to be
	// written (the high watermark).
	OffsetTimeLatest OffsetTime = -1
	// OffsetTimeEarliest asks for the oldest retained offset.
	OffsetTimeEarliest OffsetTime = -2
)

// OffsetRequest is the time-based offset lookup used by the Offset Resolver
// (C2) when no committed offset exists, and by the Partition Fetch Loop
// (C3) to recover from OffsetOutOfRange.
type OffsetRequest struct {
	ReplicaID  int32 // always -1 for a consumer
	Topic      string
	Partition  int32
	Time       OffsetTime
	MaxOffsets int32 // always 1 in this client
}

func (r *OffsetRequest) key() int16    { return 2 }
func (r *OffsetRequest) version() int16 { return 0 }
