package kafunk

import (
	"context"
	"errors"
)

// errAbortResetMember signals that OffsetFetch itself came back with a
// group-membership error (UnknownMemberId/IllegalGeneration), per spec.md
// §4.2 step 3: the Generation Engine must restart the join with
// reset-member semantics rather than treat this as an ordinary offset
// resolution failure.
var errAbortResetMember = errors.New("kafunk: offset resolver aborted, rejoin required")

// resolveOffsetTime maps ConsumerConfig's offset policy to the OffsetTime an
// OffsetRequest expects, consulting InitialFetchTimestamp for the
// TimestampOffset case.
func resolveOffsetTime(conf *ConsumerConfig) OffsetTime {
	switch conf.InitialFetchTime {
	case LatestOffset:
		return OffsetTimeLatest
	case TimestampOffset:
		return OffsetTime(conf.InitialFetchTimestamp.UnixMilli())
	default:
		return OffsetTimeEarliest
	}
}

// resolveInitialOffset implements the Offset Resolver (C2): for a single
// (topic, partition), returns the group-stored offset, or else performs a
// time-based lookup per the configured InitialFetchTime policy. At most two
// broker RPCs are issued.
func resolveInitialOffset(ctx context.Context, conn Connection, conf *ConsumerConfig, topic string, partition int32) (int64, error) {
	fetchResp, err := conn.OffsetFetch(ctx, &OffsetFetchRequest{
		GroupID:    conf.GroupID,
		Topic:      topic,
		Partitions: []int32{partition},
	})
	if err != nil {
		return 0, err
	}
	switch fetchResp.Err {
	case ErrNoError:
		// fall through
	case ErrUnknownMemberId, ErrIllegalGeneration:
		return 0, errAbortResetMember
	default:
		return 0, fetchResp.Err
	}

	if fetchResp.Offset != -1 {
		return fetchResp.Offset, nil
	}

	offResp, err := conn.Offset(ctx, &OffsetRequest{
		ReplicaID:  -1,
		Topic:      topic,
		Partition:  partition,
		Time:       resolveOffsetTime(conf),
		MaxOffsets: 1,
	})
	if err != nil {
		return 0, err
	}
	if offResp.Err != ErrNoError {
		return 0, offResp.Err
	}
	return offResp.single()
}
