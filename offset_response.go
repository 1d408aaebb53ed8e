package kafunk

// OffsetResponse carries the (at most one, since MaxOffsets is always 1)
// offset resolved by a time-based OffsetRequest.
type OffsetResponse struct {
	Err     KError
	Offsets []int64
}

func (r *OffsetResponse) key() int16    { return 2 }
func (r *OffsetResponse) version() int16 { return 0 }

// single returns the lone resolved offset, or an error if the broker
// returned zero offsets (a malformed response for MaxOffsets=1).
func (r *OffsetResponse) single() (int64, error) {
	if len(r.Offsets) == 0 {
		return 0, ErrMalformedResponse
	}
	return r.Offsets[0], nil
}
