package kafunk

import "time"

// OffsetCommitRequest is issued by the Commit Action (C5). Although only one
// (topic, partition, offset) is ever fingered by a single commit action,
// the request keeps the protocol's nested topic/partition shape named in
// spec.md §6 ("[(topic,[(partition, offset, "")])]") for fidelity with the
// wire format C6/C5 would actually emit.
type OffsetCommitRequest struct {
	GroupID       string
	GenerationID  int32
	MemberID      string
	RetentionTime int64 // milliseconds, -1 for broker default
	Topics        []OffsetCommitTopic
}

// OffsetCommitTopic groups the partitions being committed for one topic.
type OffsetCommitTopic struct {
	Topic      string
	Partitions []OffsetCommitPartition
}

// OffsetCommitPartition names the offset being committed for one partition.
type OffsetCommitPartition struct {
	Partition int32
	Offset    int64
	Metadata  string
}

func (r *OffsetCommitRequest) key() int16    { return 8 }
func (r *OffsetCommitRequest) version() int16 { return 2 }

// singlePartitionCommit builds the request for committing exactly one
// (topic, partition, offset), the only shape the Commit Action ever needs.
func singlePartitionCommit(groupID string, generationID int32, memberID string, retention time.Duration, topic string, partition int32, offset int64) *OffsetCommitRequest {
	retentionMs := int64(-1)
	if retention >= 0 {
		retentionMs = retention.Milliseconds()
	}
	return &OffsetCommitRequest{
		GroupID:       groupID,
		GenerationID:  generationID,
		MemberID:      memberID,
		RetentionTime: retentionMs,
		Topics: []OffsetCommitTopic{{
			Topic: topic,
			Partitions: []OffsetCommitPartition{
				{Partition: partition, Offset: offset, Metadata: ""},
			},
		}},
	}
}
