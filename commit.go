package kafunk

import "context"

// CommitAction is a zero-argument action bound to a specific
// (topic, partition, offset, generation, member), per spec.md §4.5. It is
// safe to invoke more than once; repeated invocation is idempotent at the
// broker (last write wins).
type CommitAction func(ctx context.Context) error

// newCommitAction builds the CommitAction the Partition Fetch Loop (C3)
// pairs with each emitted message set. Invocation after the generation
// closes is a no-op, satisfying spec.md §3 invariant 2.
func newCommitAction(conn Connection, conf *ConsumerConfig, m *groupMetrics, gen *GenerationState, topic string, partition int32, offset int64) CommitAction {
	return func(ctx context.Context) error {
		var result error
		ifClosed(gen.closed, func() {}, func() {
			req := singlePartitionCommit(conf.GroupID, gen.GenerationID, gen.MemberID, conf.OffsetRetention, topic, partition, offset)
			resp, err := conn.OffsetCommit(ctx, req)
			if err != nil {
				m.commitsFailed.Mark(1)
				logWarnf("commit: generation %d: %s/%d@%d: transport failure: %v", gen.GenerationID, topic, partition, offset, err)
				gen.Close()
				return
			}

			code, err := resp.singleError()
			if err != nil {
				m.commitsFailed.Mark(1)
				result = err
				gen.Close()
				return
			}

			switch classifyCommitError(code) {
			case classOK:
				m.commitsSent.Mark(1)
			default:
				m.commitsFailed.Mark(1)
				logInfof("commit: generation %d: %s/%d: %v, closing", gen.GenerationID, topic, partition, code)
				gen.Close()
			}
		})
		return result
	}
}
