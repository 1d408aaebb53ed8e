package kafunk

import "sort"

// topicPartition is an unassigned (topic, partition) pair, in the metadata's
// natural order, before any per-member offset has been resolved.
type topicPartition struct {
	Topic     string
	Partition int32
}

// BalanceStrategy computes a partition assignment across group members. It
// is polymorphic over (members, topicPartitions) per the Design Notes
// pluggability note in spec.md §9, so a future roundrobin strategy can be
// added without touching the Join/Sync Coordinator. This client only ever
// constructs RangeBalanceStrategy, matching spec.md's hard-coded "range"
// Non-goal.
type BalanceStrategy interface {
	// Plan returns, for each member id (in the order given), the
	// partitions it is assigned. A member given zero partitions is
	// present in the map with a nil/empty slice, never omitted.
	Plan(members []string, partitions []topicPartition) map[string][]topicPartition
}

// RangeBalanceStrategy splits the partition list into contiguous chunks of
// ceil(n/m), zipped with members in member-list order; only the trailing
// member(s) absorb the shortfall when n doesn't divide evenly, per spec.md
// §4.6 step 5 and the worked example in spec.md §8 scenario 1.
type RangeBalanceStrategy struct{}

func (RangeBalanceStrategy) Plan(members []string, partitions []topicPartition) map[string][]topicPartition {
	result := make(map[string][]topicPartition, len(members))
	if len(members) == 0 {
		return result
	}

	n := len(partitions)
	m := len(members)
	chunkSize := (n + m - 1) / m

	idx := 0
	for _, member := range members {
		if idx > n {
			idx = n
		}
		end := idx + chunkSize
		if end > n {
			end = n
		}
		result[member] = partitions[idx:end]
		idx = end
	}
	return result
}

// sortedTopicPartitions flattens a topic->partitions metadata map into the
// ordered pair list range-by-index chunks, sorted by topic then partition
// id so the plan is deterministic regardless of map iteration order. The
// leader always plans over this ordering, since GetMetadata returns an
// unordered map; the order of partition ids within each topic's slice is
// not kept.
func sortedTopicPartitions(topics map[string][]int32) []topicPartition {
	var out []topicPartition
	for topic, partitions := range topics {
		for _, p := range partitions {
			out = append(out, topicPartition{Topic: topic, Partition: p})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Topic != out[j].Topic {
			return out[i].Topic < out[j].Topic
		}
		return out[i].Partition < out[j].Partition
	})
	return out
}
