package kafunk

// OffsetFetchResponse carries, for the single (topic, partition) the
// Offset Resolver asked about, either a committed offset or -1 meaning "no
// committed offset exists yet".
type OffsetFetchResponse struct {
	Err      KError
	Offset   int64
	Metadata string
}

func (r *OffsetFetchResponse) key() int16    { return 9 }
func (r *OffsetFetchResponse) version() int16 { return 1 }
