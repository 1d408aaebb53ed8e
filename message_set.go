package kafunk

import "time"

// ConsumerMessage is a single decoded record handed to the application,
// mirroring sarama's ConsumerMessage shape.
type ConsumerMessage struct {
	Key, Value []byte
	Topic      string
	Partition  int32
	Offset     int64
	Timestamp  time.Time
}

// MessageSet is a batch of records returned by a Fetch, in offset order, per
// the GLOSSARY definition.
type MessageSet []ConsumerMessage

// nextOffset computes max(highWatermark, lastMessageOffset+1) for a
// non-empty set, per spec.md §4.3 step 6. Callers must not invoke this on an
// empty set; an empty fetch response is handled by the 10s-backoff path
// instead (step 5), never by emitting a set.
func (ms MessageSet) nextOffset(highWatermark int64) int64 {
	last := ms[len(ms)-1].Offset
	if highWatermark > last+1 {
		return highWatermark
	}
	return last + 1
}
