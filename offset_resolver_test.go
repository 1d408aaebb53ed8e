package kafunk

import (
	"context"
	"testing"
	"time"
)

// TestResolveOffsetTime_TimestampOffset covers spec.md §3's third
// initialFetchTime value: a configured wall-clock Timestamp must reach the
// broker as its millisecond OffsetTime, not silently fall back to Earliest.
func TestResolveOffsetTime_TimestampOffset(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	conf := testConfig("orders")
	conf.InitialFetchTime = TimestampOffset
	conf.InitialFetchTimestamp = ts

	got := resolveOffsetTime(conf)
	want := OffsetTime(ts.UnixMilli())
	if got != want {
		t.Errorf("resolveOffsetTime() = %d, want %d (the configured timestamp)", got, want)
	}
}

// TestJoinCoordinator_TimestampOffsetDrivesInitialLookup covers the C2 path
// end to end: no committed offset exists, so the time-based OffsetRequest
// must carry the configured timestamp rather than Earliest.
func TestJoinCoordinator_TimestampOffsetDrivesInitialLookup(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	conn := newFakeConnection()
	var offsetReq *OffsetRequest
	conn.offsetFetchFn = func(req *OffsetFetchRequest) (*OffsetFetchResponse, error) {
		return &OffsetFetchResponse{Offset: -1}, nil
	}
	conn.offsetFn = func(req *OffsetRequest) (*OffsetResponse, error) {
		offsetReq = req
		return &OffsetResponse{Offsets: []int64{99}}, nil
	}

	conf := testConfig("orders")
	conf.InitialFetchTime = TimestampOffset
	conf.InitialFetchTimestamp = ts

	offset, err := resolveInitialOffset(context.Background(), conn, conf, "orders", 0)
	if err != nil {
		t.Fatalf("resolveInitialOffset: %v", err)
	}
	if offset != 99 {
		t.Errorf("offset = %d, want 99", offset)
	}
	if offsetReq == nil || offsetReq.Time != OffsetTime(ts.UnixMilli()) {
		t.Fatalf("unexpected OffsetRequest.Time: %+v", offsetReq)
	}
}

// TestPartitionStream_TimestampOffsetRecovery covers the other call site:
// out-of-range recovery must also honor a configured Timestamp policy.
func TestPartitionStream_TimestampOffsetRecovery(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	conn := newFakeConnection()
	fetchCalls := 0
	conn.fetchFn = func(req *FetchRequest) (*FetchResponse, error) {
		fetchCalls++
		if fetchCalls == 1 {
			return &FetchResponse{Topics: []FetchResponseTopic{{Topic: "orders", Partitions: []FetchResponsePartition{{
				Partition: 0, Err: ErrOffsetOutOfRange,
			}}}}}, nil
		}
		return &FetchResponse{Topics: []FetchResponseTopic{{Topic: "orders", Partitions: []FetchResponsePartition{{
			Partition: 0, HighWatermark: 201, Messages: MessageSet{{Offset: 200}},
		}}}}}, nil
	}
	var offsetReq *OffsetRequest
	conn.offsetFn = func(req *OffsetRequest) (*OffsetResponse, error) {
		offsetReq = req
		return &OffsetResponse{Offsets: []int64{200}}, nil
	}

	conf := testConfig("orders")
	conf.InitialFetchTime = TimestampOffset
	conf.InitialFetchTimestamp = ts
	conf.OffsetOutOfRangeBackoff = 2 * time.Millisecond
	gen := newGenerationState(1, "m1", "m1", nil)
	m := newGroupMetrics(nil, conf.GroupID)

	out := make(chan FetchedBatch, 1)
	errs := make(chan error, 1)
	go runPartitionStream(context.Background(), conn, conf, m, gen, "orders", 0, 0, out, errs)

	select {
	case <-out:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for recovery batch")
	}
	if offsetReq == nil || offsetReq.Time != OffsetTime(ts.UnixMilli()) {
		t.Fatalf("unexpected OffsetRequest.Time: %+v", offsetReq)
	}
	gen.Close()
}
