package kafunk

// FetchResponse carries the reply to a single-partition FetchRequest. An
// empty Topics list is a broker protocol violation and is fatal per
// spec.md §4.3 step 3.
type FetchResponse struct {
	Topics []FetchResponseTopic
}

// FetchResponseTopic groups the one partition block a single-partition
// fetch ever returns.
type FetchResponseTopic struct {
	Topic      string
	Partitions []FetchResponsePartition
}

// FetchResponsePartition carries the partition's error code, high
// watermark, and message set.
type FetchResponsePartition struct {
	Partition     int32
	Err           KError
	HighWatermark int64
	Messages      MessageSet
}

func (r *FetchResponse) key() int16    { return 1 }
func (r *FetchResponse) version() int16 { return 0 }

// singlePartition returns the lone partition block this client ever
// requests, or ErrMalformedResponse if the broker violated protocol by
// returning no topics at all.
func (r *FetchResponse) singlePartition() (*FetchResponsePartition, error) {
	if len(r.Topics) == 0 || len(r.Topics[0].Partitions) == 0 {
		return nil, ErrMalformedResponse
	}
	return &r.Topics[0].Partitions[0], nil
}
