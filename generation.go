package kafunk

import "context"

// PartitionStream is one assigned partition's lazy batch stream within a
// generation, the C3 output handed to the downstream consumer.
type PartitionStream struct {
	Topic     string
	Partition int32
	Batches   <-chan FetchedBatch
}

// Generation is one element of the sequence the Generation Engine (C7)
// produces: a membership epoch and the per-partition streams assigned to
// this member within it.
type Generation struct {
	GenerationID int32
	MemberID     string
	Partitions   []PartitionStream

	state *GenerationState
}

// Done exposes the generation's closed latch so callers can tell when it
// has torn down.
func (g *Generation) Done() <-chan struct{} { return g.state.Done() }

// runGenerationEngine implements C7: it drives join->assign->fetch in a
// loop, emitting each Generation on generations, and stops (closing
// generations) when ctx is done or join returns an error (reported on
// fatal). Errors from partition streams are relayed to fatal as well but do
// not stop the loop. Per spec.md §5, generation N+1's join does not start until
// generation N's closed latch has fired.
func runGenerationEngine(ctx context.Context, jc *joinCoordinator, conf *ConsumerConfig, m *groupMetrics, generations chan<- *Generation, fatal chan<- error) {
	defer close(generations)

	prevMemberID := ""
	var prevState *GenerationState

	for {
		if prevState != nil {
			select {
			case <-prevState.Done():
			case <-ctx.Done():
				return
			}
		}
		if err := ctx.Err(); err != nil {
			return
		}

		state, err := jc.join(ctx, prevMemberID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fatal <- err
			return
		}

		gen := &Generation{
			GenerationID: state.GenerationID,
			MemberID:     state.MemberID,
			state:        state,
		}
		for _, a := range state.Assignments {
			out := make(chan FetchedBatch, 1)
			go runPartitionStream(ctx, jc.conn, conf, m, state, a.Topic, a.Partition, a.InitialOffset, out, errsOrDiscard(fatal, state))
			gen.Partitions = append(gen.Partitions, PartitionStream{
				Topic: a.Topic, Partition: a.Partition, Batches: out,
			})
		}

		select {
		case generations <- gen:
		case <-ctx.Done():
			return
		}

		prevMemberID = state.MemberID
		prevState = state
	}
}

// errsOrDiscard adapts the shared fatal channel for a single partition
// stream: each non-nil error the stream reports (the stream has already
// closed the generation) is forwarded upstream without blocking, and is
// discarded when fatal already holds an undelivered error. state is not
// consulted; errors are not tagged with their generation.
func errsOrDiscard(fatal chan<- error, state *GenerationState) chan<- error {
	relay := make(chan error, 1)
	go func() {
		for err := range relay {
			if err == nil {
				continue
			}
			select {
			case fatal <- err:
			default:
			}
		}
	}()
	return relay
}
