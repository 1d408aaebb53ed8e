package kafunk

// OffsetCommitResponse carries one error code per (topic, partition)
// committed. An empty Topics array is a protocol violation and is fatal per
// spec.md §7 class 6.
type OffsetCommitResponse struct {
	Topics []OffsetCommitTopicResult
}

// OffsetCommitTopicResult is one topic's worth of per-partition error codes.
type OffsetCommitTopicResult struct {
	Topic      string
	Partitions []OffsetCommitPartitionResult
}

// OffsetCommitPartitionResult names the error code for one committed
// partition.
type OffsetCommitPartitionResult struct {
	Partition int32
	Err       KError
}

func (r *OffsetCommitResponse) key() int16    { return 8 }
func (r *OffsetCommitResponse) version() int16 { return 2 }

// singleError returns the lone partition error code committed by a
// single-partition request, or ErrMalformedResponse if the response omits
// the topics array entirely.
func (r *OffsetCommitResponse) singleError() (KError, error) {
	if len(r.Topics) == 0 || len(r.Topics[0].Partitions) == 0 {
		return 0, ErrMalformedResponse
	}
	return r.Topics[0].Partitions[0].Err, nil
}
