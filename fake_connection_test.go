package kafunk

import (
	"context"
	"sync"
	"time"
)

// fakeConnection is an in-package test double implementing Connection. Each
// RPC is backed by an overridable function; a nil function answers with a
// harmless default so a test only needs to script the calls it cares about.
// JoinGroup, SyncGroup, Heartbeat, OffsetCommit, and Fetch calls are
// recorded for later assertions, following the teacher's
// preference for hand-rolled fakes over a mocking framework.
type fakeConnection struct {
	mu sync.Mutex

	doneCh chan struct{}

	metadata map[string][]int32

	joinGroupFn    func(*JoinGroupRequest) (*JoinGroupResponse, error)
	syncGroupFn    func(*SyncGroupRequest) (*SyncGroupResponse, error)
	heartbeatFn    func(*HeartbeatRequest) (*HeartbeatResponse, error)
	offsetFetchFn  func(*OffsetFetchRequest) (*OffsetFetchResponse, error)
	offsetFn       func(*OffsetRequest) (*OffsetResponse, error)
	offsetCommitFn func(*OffsetCommitRequest) (*OffsetCommitResponse, error)
	fetchFn        func(*FetchRequest) (*FetchResponse, error)

	joinGroupCalls    []*JoinGroupRequest
	syncGroupCalls    []*SyncGroupRequest
	heartbeatCalls    []*HeartbeatRequest
	offsetCommitCalls []*OffsetCommitRequest
	fetchCalls        []*FetchRequest
}

func newFakeConnection() *fakeConnection {
	return &fakeConnection{doneCh: make(chan struct{})}
}

func (f *fakeConnection) GetGroupCoordinator(ctx context.Context, group string) (BrokerRef, error) {
	return "broker-0", nil
}

func (f *fakeConnection) ReconnectChans(ctx context.Context) error { return nil }

func (f *fakeConnection) JoinGroup(ctx context.Context, req *JoinGroupRequest) (*JoinGroupResponse, error) {
	f.mu.Lock()
	f.joinGroupCalls = append(f.joinGroupCalls, req)
	f.mu.Unlock()
	if f.joinGroupFn != nil {
		return f.joinGroupFn(req)
	}
	return &JoinGroupResponse{GenerationID: 1, MemberID: "m1", LeaderID: "m1"}, nil
}

func (f *fakeConnection) SyncGroup(ctx context.Context, req *SyncGroupRequest) (*SyncGroupResponse, error) {
	f.mu.Lock()
	f.syncGroupCalls = append(f.syncGroupCalls, req)
	f.mu.Unlock()
	if f.syncGroupFn != nil {
		return f.syncGroupFn(req)
	}
	return &SyncGroupResponse{Assignment: &GroupMemberAssignment{
		AssignedTopicPartitions: map[string][]int32{"orders": {0}},
	}}, nil
}

func (f *fakeConnection) Heartbeat(ctx context.Context, req *HeartbeatRequest) (*HeartbeatResponse, error) {
	f.mu.Lock()
	f.heartbeatCalls = append(f.heartbeatCalls, req)
	f.mu.Unlock()
	if f.heartbeatFn != nil {
		return f.heartbeatFn(req)
	}
	return &HeartbeatResponse{}, nil
}

func (f *fakeConnection) OffsetFetch(ctx context.Context, req *OffsetFetchRequest) (*OffsetFetchResponse, error) {
	if f.offsetFetchFn != nil {
		return f.offsetFetchFn(req)
	}
	return &OffsetFetchResponse{Offset: 100}, nil
}

func (f *fakeConnection) Offset(ctx context.Context, req *OffsetRequest) (*OffsetResponse, error) {
	if f.offsetFn != nil {
		return f.offsetFn(req)
	}
	return &OffsetResponse{Offsets: []int64{0}}, nil
}

func (f *fakeConnection) OffsetCommit(ctx context.Context, req *OffsetCommitRequest) (*OffsetCommitResponse, error) {
	f.mu.Lock()
	f.offsetCommitCalls = append(f.offsetCommitCalls, req)
	f.mu.Unlock()
	if f.offsetCommitFn != nil {
		return f.offsetCommitFn(req)
	}
	return &OffsetCommitResponse{Topics: []OffsetCommitTopicResult{{
		Topic:      req.Topics[0].Topic,
		Partitions: []OffsetCommitPartitionResult{{Partition: req.Topics[0].Partitions[0].Partition}},
	}}}, nil
}

func (f *fakeConnection) Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse, error) {
	f.mu.Lock()
	f.fetchCalls = append(f.fetchCalls, req)
	f.mu.Unlock()
	if f.fetchFn != nil {
		return f.fetchFn(req)
	}
	return &FetchResponse{Topics: []FetchResponseTopic{{
		Topic: req.Topic,
		Partitions: []FetchResponsePartition{{
			Partition:     req.Partition,
			HighWatermark: req.Offset,
		}},
	}}}, nil
}

func (f *fakeConnection) GetMetadata(ctx context.Context, topics []string) (map[string][]int32, error) {
	return f.metadata, nil
}

func (f *fakeConnection) Done() <-chan struct{} { return f.doneCh }

func (f *fakeConnection) joinGroupCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.joinGroupCalls)
}

func (f *fakeConnection) joinGroupMemberIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, len(f.joinGroupCalls))
	for i, r := range f.joinGroupCalls {
		ids[i] = r.MemberID
	}
	return ids
}

func testConfig(topics ...string) *ConsumerConfig {
	conf := NewConfig()
	conf.GroupID = "test-group"
	conf.Topics = topics
	conf.SessionTimeout = 30 * time.Millisecond
	conf.FetchEmptyBackoff = 5 * time.Millisecond
	conf.OffsetOutOfRangeBackoff = 5 * time.Millisecond
	return conf
}
