package kafunk

import (
	"context"
	"testing"
)

func TestCommitAction_NoOpAfterClose(t *testing.T) {
	conn := newFakeConnection()
	conf := testConfig("orders")
	gen := newGenerationState(1, "m1", "m1", nil)
	gen.Close()

	commit := newCommitAction(conn, conf, newGroupMetrics(nil, conf.GroupID), gen, "orders", 0, 10)
	if err := commit(context.Background()); err != nil {
		t.Fatalf("commit after close should be a no-op, got error: %v", err)
	}
	if len(conn.offsetCommitCalls) != 0 {
		t.Errorf("no broker call should be made after close, got %d", len(conn.offsetCommitCalls))
	}
}

func TestCommitAction_RebalanceClosesGeneration(t *testing.T) {
	conn := newFakeConnection()
	conn.offsetCommitFn = func(req *OffsetCommitRequest) (*OffsetCommitResponse, error) {
		return &OffsetCommitResponse{Topics: []OffsetCommitTopicResult{{
			Topic:      "orders",
			Partitions: []OffsetCommitPartitionResult{{Partition: 0, Err: ErrRebalanceInProgress}},
		}}}, nil
	}

	conf := testConfig("orders")
	gen := newGenerationState(1, "m1", "m1", nil)
	commit := newCommitAction(conn, conf, newGroupMetrics(nil, conf.GroupID), gen, "orders", 0, 10)

	if err := commit(context.Background()); err != nil {
		t.Fatalf("rebalance-class commit error should not be surfaced, got %v", err)
	}
	if !gen.Closed() {
		t.Error("expected generation to close after a rebalance-class commit error")
	}
}

func TestCommitAction_MissingTopicsIsFatal(t *testing.T) {
	conn := newFakeConnection()
	conn.offsetCommitFn = func(req *OffsetCommitRequest) (*OffsetCommitResponse, error) {
		return &OffsetCommitResponse{}, nil
	}

	conf := testConfig("orders")
	gen := newGenerationState(1, "m1", "m1", nil)
	commit := newCommitAction(conn, conf, newGroupMetrics(nil, conf.GroupID), gen, "orders", 0, 10)

	if err := commit(context.Background()); err == nil {
		t.Fatal("expected a fatal error when the response omits the topics array")
	}
	if !gen.Closed() {
		t.Error("expected generation to close on a malformed commit response too")
	}
}
