package kafunk

import "context"

// Connection is the upstream collaborator this package consumes: an
// established connection to a Kafka cluster, including coordinator
// discovery, request/response transport, and a cancellation signal. Its
// wire codec, broker pool, and coordinator discovery internals are
// deliberately out of scope per spec.md §1; this package only calls the
// methods named here.
type Connection interface {
	// GetGroupCoordinator discovers the broker that coordinates group.
	GetGroupCoordinator(ctx context.Context, group string) (BrokerRef, error)
	// ReconnectChans forces a reconnect of all broker channels, used by
	// C6 step 1 to recover from a dead coordinator on rejoin.
	ReconnectChans(ctx context.Context) error

	JoinGroup(ctx context.Context, req *JoinGroupRequest) (*JoinGroupResponse, error)
	SyncGroup(ctx context.Context, req *SyncGroupRequest) (*SyncGroupResponse, error)
	Heartbeat(ctx context.Context, req *HeartbeatRequest) (*HeartbeatResponse, error)
	OffsetFetch(ctx context.Context, req *OffsetFetchRequest) (*OffsetFetchResponse, error)
	Offset(ctx context.Context, req *OffsetRequest) (*OffsetResponse, error)
	OffsetCommit(ctx context.Context, req *OffsetCommitRequest) (*OffsetCommitResponse, error)
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse, error)

	// GetMetadata resolves each topic to its partition ids, in the
	// broker's natural order, used by the leader to build the assignment.
	GetMetadata(ctx context.Context, topics []string) (map[string][]int32, error)

	// Done is the connection's cancellation token: a one-shot signal that,
	// once closed, means the whole consumer is shutting down. The current
	// generation's closed latch is hooked to it per spec.md §4.6 step 10.
	Done() <-chan struct{}
}
