package kafunk

import (
	"context"
	"sync"
	"time"
)

// joinCoordinator implements C6: Join/Sync Coordinator. One instance is
// shared across the lifetime of the Generation Engine so its circuit
// breaker state persists across rejoins.
type joinCoordinator struct {
	conn    Connection
	conf    *ConsumerConfig
	metrics *groupMetrics
	balance BalanceStrategy
	breaker *joinBreaker
}

func newJoinCoordinator(conn Connection, conf *ConsumerConfig, metrics *groupMetrics) *joinCoordinator {
	return &joinCoordinator{
		conn:    conn,
		conf:    conf,
		metrics: metrics,
		balance: RangeBalanceStrategy{},
		breaker: newJoinBreaker(5, conf.SessionTimeout),
	}
}

// join runs the algorithm in spec.md §4.6 to completion, retrying internally
// on every rejoin/reset-member classification, and returns only on success
// or a fatal error, or when ctx is done.
func (jc *joinCoordinator) join(ctx context.Context, prevMemberID string) (*GenerationState, error) {
	memberID := prevMemberID
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state, nextMemberID, retry, err := jc.attempt(ctx, memberID)
		if err != nil {
			return nil, err
		}
		if !retry {
			return state, nil
		}
		memberID = nextMemberID
	}
}

// attempt runs one pass of join->sync. retry=true with no error means the
// caller should loop again with nextMemberID; a non-nil error is fatal.
func (jc *joinCoordinator) attempt(ctx context.Context, memberID string) (state *GenerationState, nextMemberID string, retry bool, err error) {
	if memberID != "" {
		if err := jc.conn.ReconnectChans(ctx); err != nil {
			logWarnf("join: reconnect failed: %v", err)
		}
	}

	if _, err := jc.conn.GetGroupCoordinator(ctx, jc.conf.GroupID); err != nil {
		return nil, memberID, false, err
	}

	var joinResp *JoinGroupResponse
	breakErr := jc.breaker.run(func() error {
		resp, err := jc.conn.JoinGroup(ctx, &JoinGroupRequest{
			GroupID:        jc.conf.GroupID,
			SessionTimeout: int32(jc.conf.SessionTimeout.Milliseconds()),
			MemberID:       memberID,
			ProtocolType:   "consumer",
			GroupProtocols: []GroupProtocol{{
				Name: "range",
				Metadata: &GroupMemberMetadata{
					Version: 0,
					Topics:  jc.conf.Topics,
				},
			}},
		})
		if err != nil {
			return err
		}
		joinResp = resp
		return nil
	})
	if breakErr != nil {
		return nil, memberID, false, breakErr
	}

	switch classifyGroupError(joinResp.Err) {
	case classOK:
		// continue below
	case classResetMember:
		jc.metrics.rebalances.Inc(1)
		sleepInterruptible(ctx, jc.conf.SessionTimeout, nil)
		return nil, "", true, nil
	default:
		jc.metrics.rebalances.Inc(1)
		return nil, memberID, true, nil
	}

	memberID = joinResp.MemberID

	var assignRequest []SyncGroupAssignment
	if len(joinResp.Members) > 0 {
		assignRequest, err = jc.planAssignment(ctx, joinResp)
		if err != nil {
			return nil, memberID, false, err
		}
	}

	syncResp, err := jc.conn.SyncGroup(ctx, &SyncGroupRequest{
		GroupID:          jc.conf.GroupID,
		GenerationID:     joinResp.GenerationID,
		MemberID:         memberID,
		GroupAssignments: assignRequest,
	})
	if err != nil {
		return nil, memberID, false, err
	}

	switch classifyGroupError(syncResp.Err) {
	case classOK:
		// continue below
	default:
		jc.metrics.rebalances.Inc(1)
		return nil, memberID, true, nil
	}

	if syncResp.Assignment == nil || syncResp.Assignment.partitionCount() == 0 {
		return nil, memberID, false, ErrEmptyAssignment
	}

	assignments, err := jc.resolveAssignmentOffsets(ctx, syncResp.Assignment)
	if err != nil {
		if err == errAbortResetMember {
			sleepInterruptible(ctx, jc.conf.SessionTimeout, nil)
			return nil, "", true, nil
		}
		return nil, memberID, false, err
	}

	gen := newGenerationState(joinResp.GenerationID, memberID, joinResp.LeaderID, assignments)
	jc.hookCancellation(gen)
	go runHeartbeatLoop(ctx, jc.conn, jc.conf, jc.metrics, gen)

	return gen, "", false, nil
}

// planAssignment is invoked only when this member is elected leader
// (spec.md §4.6 step 5): fetch metadata, range-assign, and build the
// per-member SyncGroup payload.
func (jc *joinCoordinator) planAssignment(ctx context.Context, joinResp *JoinGroupResponse) ([]SyncGroupAssignment, error) {
	topicMeta, err := jc.conn.GetMetadata(ctx, jc.conf.Topics)
	if err != nil {
		return nil, err
	}
	pairs := sortedTopicPartitions(topicMeta)

	memberIDs := make([]string, len(joinResp.Members))
	for i, m := range joinResp.Members {
		memberIDs[i] = m.MemberID
	}

	plan := jc.balance.Plan(memberIDs, pairs)

	out := make([]SyncGroupAssignment, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		byTopic := map[string][]int32{}
		for _, tp := range plan[memberID] {
			byTopic[tp.Topic] = append(byTopic[tp.Topic], tp.Partition)
		}
		out = append(out, SyncGroupAssignment{
			MemberID:   memberID,
			Assignment: &GroupMemberAssignment{Version: 0, AssignedTopicPartitions: byTopic},
		})
	}
	return out, nil
}

// resolveAssignmentOffsets resolves the initial fetch offset for every
// assigned (topic, partition) in parallel, per spec.md §4.6 step 9.
func (jc *joinCoordinator) resolveAssignmentOffsets(ctx context.Context, assignment *GroupMemberAssignment) ([]TopicPartitionAssignment, error) {
	type result struct {
		tpa TopicPartitionAssignment
		err error
	}

	var pairs []topicPartition
	for topic, partitions := range assignment.AssignedTopicPartitions {
		for _, p := range partitions {
			pairs = append(pairs, topicPartition{Topic: topic, Partition: p})
		}
	}

	results := make([]result, len(pairs))
	var wg sync.WaitGroup
	for i, tp := range pairs {
		wg.Add(1)
		go func(i int, tp topicPartition) {
			defer wg.Done()
			offset, err := resolveInitialOffset(ctx, jc.conn, jc.conf, tp.Topic, tp.Partition)
			results[i] = result{
				tpa: TopicPartitionAssignment{Topic: tp.Topic, Partition: tp.Partition, InitialOffset: offset},
				err: err,
			}
		}(i, tp)
	}
	wg.Wait()

	out := make([]TopicPartitionAssignment, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, r.tpa)
	}
	return out, nil
}

// hookCancellation registers a fire-and-forget goroutine that trips the
// generation's closed latch when the connection's cancellation token fires,
// per spec.md §4.6 step 10 and the "weak reference" design note in §9.
func (jc *joinCoordinator) hookCancellation(gen *GenerationState) {
	go func() {
		select {
		case <-jc.conn.Done():
			gen.Close()
		case <-gen.Done():
		}
	}()
}

// sleepInterruptible sleeps for d, waking early if closed fires first (or
// ctx is done), per spec.md §5 "all sleeps are interruptible by closed".
// closed may be nil when no generation exists yet to interrupt against.
func sleepInterruptible(ctx context.Context, d time.Duration, closed *closedLatch) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	var done <-chan struct{}
	if closed != nil {
		done = closed.done()
	}

	select {
	case <-timer.C:
	case <-done:
	case <-ctx.Done():
	}
}
