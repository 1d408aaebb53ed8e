package kafunk

import (
	"reflect"
	"testing"
)

// TestRangeBalanceStrategy_ThreeMembersSevenPartitions is the worked example
// from spec.md §8 scenario 1: members [m1,m2,m3], partitions (t,0..6),
// expected m1:[0,1,2], m2:[3,4,5], m3:[6].
func TestRangeBalanceStrategy_ThreeMembersSevenPartitions(t *testing.T) {
	members := []string{"m1", "m2", "m3"}
	var partitions []topicPartition
	for i := int32(0); i <= 6; i++ {
		partitions = append(partitions, topicPartition{Topic: "t", Partition: i})
	}

	plan := RangeBalanceStrategy{}.Plan(members, partitions)

	want := map[string][]int32{
		"m1": {0, 1, 2},
		"m2": {3, 4, 5},
		"m3": {6},
	}
	for member, wantPartitions := range want {
		got := make([]int32, len(plan[member]))
		for i, tp := range plan[member] {
			got[i] = tp.Partition
		}
		if !reflect.DeepEqual(got, wantPartitions) {
			t.Errorf("member %s: got partitions %v, want %v", member, got, wantPartitions)
		}
	}
}

func TestRangeBalanceStrategy_MoreMembersThanPartitions(t *testing.T) {
	members := []string{"m1", "m2", "m3"}
	partitions := []topicPartition{{Topic: "t", Partition: 0}}

	plan := RangeBalanceStrategy{}.Plan(members, partitions)

	if len(plan["m1"]) != 1 {
		t.Errorf("m1 should receive the lone partition, got %v", plan["m1"])
	}
	if _, ok := plan["m2"]; !ok {
		t.Error("m2 should be present in the plan with an empty assignment, not omitted")
	}
	if len(plan["m2"]) != 0 || len(plan["m3"]) != 0 {
		t.Errorf("excess members should receive empty assignments, got m2=%v m3=%v", plan["m2"], plan["m3"])
	}
}

func TestRangeBalanceStrategy_NoMembers(t *testing.T) {
	plan := RangeBalanceStrategy{}.Plan(nil, []topicPartition{{Topic: "t", Partition: 0}})
	if len(plan) != 0 {
		t.Errorf("expected empty plan with no members, got %v", plan)
	}
}

func TestSortedTopicPartitions(t *testing.T) {
	in := map[string][]int32{
		"b": {1, 0},
		"a": {2, 0},
	}
	got := sortedTopicPartitions(in)
	want := []topicPartition{
		{Topic: "a", Partition: 0},
		{Topic: "a", Partition: 2},
		{Topic: "b", Partition: 0},
		{Topic: "b", Partition: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sortedTopicPartitions() = %v, want %v", got, want)
	}
}
