package kafunk

import (
	"time"

	metrics "github.com/rcrowley/go-metrics"
)

// InitialOffsetPolicy selects where an unresolved (topic, partition) starts
// fetching from, used both as the ConsumerConfig default and as the target
// of an out-of-range recovery lookup.
type InitialOffsetPolicy int

const (
	// EarliestOffset resolves to the oldest offset retained by the broker.
	EarliestOffset InitialOffsetPolicy = iota
	// LatestOffset resolves to the next offset the broker will produce.
	LatestOffset
	// TimestampOffset resolves to the first offset at or after Timestamp.
	TimestampOffset
)

// ConsumerConfig is the immutable input to NewConsumer. Zero-value fields
// behave as if NewConfig had not been called; call NewConfig to populate
// defaults and then override only what you need, as with sarama's Config.
type ConsumerConfig struct {
	// GroupID identifies the consumer group this client joins.
	GroupID string
	// Topics lists the topics this group subscribes to.
	Topics []string

	// SessionTimeout is the broker-side contract for how long the group
	// coordinator will wait between heartbeats before considering this
	// member dead.
	SessionTimeout time.Duration
	// HeartbeatFrequency divides SessionTimeout to produce the heartbeat
	// interval: interval = SessionTimeout / HeartbeatFrequency.
	HeartbeatFrequency int

	// FetchMinBytes is the minimum number of bytes the broker should
	// accumulate before answering a Fetch.
	FetchMinBytes int32
	// FetchMaxWait bounds how long the broker long-polls a Fetch before
	// replying, even if FetchMinBytes has not been reached.
	FetchMaxWait time.Duration
	// FetchBufferBytes is the per-partition buffer size offered to the
	// broker on each Fetch.
	FetchBufferBytes int32

	// OffsetRetention is how long a committed offset is retained by the
	// broker; -1 requests the broker default.
	OffsetRetention time.Duration

	// InitialFetchTime selects the policy used when no committed offset
	// exists for a partition, and when recovering from OffsetOutOfRange.
	InitialFetchTime InitialOffsetPolicy
	// InitialFetchTimestamp is only consulted when InitialFetchTime is
	// TimestampOffset.
	InitialFetchTimestamp time.Time

	// FetchEmptyBackoff is how long the partition fetch loop sleeps after
	// an empty (no new data) fetch response before retrying at the same
	// offset. Exposed per the Design Notes open question about magic
	// numbers; defaults to 10s, matching the source behavior.
	FetchEmptyBackoff time.Duration
	// OffsetOutOfRangeBackoff is how long the partition fetch loop sleeps
	// after recovering from OffsetOutOfRange before resuming. Exposed per
	// the Design Notes open question; defaults to 5s.
	OffsetOutOfRangeBackoff time.Duration

	// MetricRegistry receives the counters and meters described in
	// SPEC_FULL.md §4; a private registry is created if nil.
	MetricRegistry metrics.Registry
}

// NewConfig returns a ConsumerConfig populated with the defaults named in
// spec.md §6: SessionTimeout 20s, HeartbeatFrequency 10, FetchMinBytes 0,
// FetchMaxWait 0, FetchBufferBytes 1MB, OffsetRetention -1 (broker default),
// InitialFetchTime EarliestOffset.
func NewConfig() *ConsumerConfig {
	return &ConsumerConfig{
		SessionTimeout:          20 * time.Second,
		HeartbeatFrequency:      10,
		FetchMinBytes:           0,
		FetchMaxWait:            0,
		FetchBufferBytes:        1000000,
		OffsetRetention:         -1,
		InitialFetchTime:        EarliestOffset,
		FetchEmptyBackoff:       10 * time.Second,
		OffsetOutOfRangeBackoff: 5 * time.Second,
	}
}

// Validate reports a ConfigurationError for any field that would make
// NewConsumer unsafe to run, mirroring sarama's Config.Validate pattern.
func (c *ConsumerConfig) Validate() error {
	if c.GroupID == "" {
		return ConfigurationError("GroupID must not be empty")
	}
	if len(c.Topics) == 0 {
		return ConfigurationError("Topics must not be empty")
	}
	if c.SessionTimeout <= 0 {
		return ConfigurationError("SessionTimeout must be positive")
	}
	if c.HeartbeatFrequency <= 0 {
		return ConfigurationError("HeartbeatFrequency must be positive")
	}
	if c.FetchBufferBytes <= 0 {
		return ConfigurationError("FetchBufferBytes must be positive")
	}
	if c.FetchEmptyBackoff <= 0 {
		return ConfigurationError("FetchEmptyBackoff must be positive")
	}
	if c.OffsetOutOfRangeBackoff <= 0 {
		return ConfigurationError("OffsetOutOfRangeBackoff must be positive")
	}
	return nil
}

// heartbeatInterval computes SessionTimeout / HeartbeatFrequency.
func (c *ConsumerConfig) heartbeatInterval() time.Duration {
	return c.SessionTimeout / time.Duration(c.HeartbeatFrequency)
}
