package kafunk

import "context"

// FetchedBatch pairs a MessageSet with the CommitAction that checkpoints the
// offset at which that set began, per spec.md §4.3 step 6: the commit
// action carries the *starting* offset of the emitted set, not its
// nextOffset.
type FetchedBatch struct {
	Topic     string
	Partition int32
	Messages  MessageSet
	Commit    CommitAction
}

// runPartitionStream implements C3: the lazy, per-partition fetch loop. It
// writes FetchedBatch values to out until the generation closes or a fatal
// error occurs, then closes out. A non-nil error reported on errs is always
// of the fatal class; every other outcome is absorbed silently by closing
// the generation, per spec.md §7.
func runPartitionStream(ctx context.Context, conn Connection, conf *ConsumerConfig, m *groupMetrics, gen *GenerationState, topic string, partition int32, startOffset int64, out chan<- FetchedBatch, errs chan<- error) {
	defer close(out)
	defer close(errs)

	offset := startOffset
	for {
		if gen.Closed() {
			return
		}

		resp, err := conn.Fetch(ctx, &FetchRequest{
			ReplicaID:   -1,
			MaxWaitTime: int32(conf.FetchMaxWait.Milliseconds()),
			MinBytes:    conf.FetchMinBytes,
			Topic:       topic,
			Partition:   partition,
			Offset:      offset,
			BufferBytes: conf.FetchBufferBytes,
		})
		if err != nil {
			logWarnf("fetch: generation %d: %s/%d: transport failure: %v", gen.GenerationID, topic, partition, err)
			gen.Close()
			return
		}

		part, err := resp.singlePartition()
		if err != nil {
			errs <- err
			gen.Close()
			return
		}

		switch classifyFetchError(part.Err) {
		case classOK:
			// continue below

		case classRetryFetch:
			offResp, err := conn.Offset(ctx, &OffsetRequest{
				ReplicaID:  -1,
				Topic:      topic,
				Partition:  partition,
				Time:       resolveOffsetTime(conf),
				MaxOffsets: 1,
			})
			if err != nil {
				gen.Close()
				return
			}
			recovered, err := offResp.single()
			if err != nil {
				errs <- err
				gen.Close()
				return
			}
			sleepInterruptible(ctx, conf.OffsetOutOfRangeBackoff, gen.closed)
			offset = recovered
			continue

		default:
			logInfof("fetch: generation %d: %s/%d: %v, closing", gen.GenerationID, topic, partition, part.Err)
			gen.Close()
			return
		}

		if len(part.Messages) == 0 {
			m.fetchesEmpty.Mark(1)
			sleepInterruptible(ctx, conf.FetchEmptyBackoff, gen.closed)
			continue
		}

		batch := FetchedBatch{
			Topic:     topic,
			Partition: partition,
			Messages:  part.Messages,
			Commit:    newCommitAction(conn, conf, m, gen, topic, partition, offset),
		}

		select {
		case out <- batch:
		case <-gen.Done():
			return
		case <-ctx.Done():
			return
		}

		offset = part.Messages.nextOffset(part.HighWatermark)
	}
}
